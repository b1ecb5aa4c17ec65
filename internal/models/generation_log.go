package models

import "time"

// GenerationLog is an append-only audit entry for one completed generation
// call, stored in Mongo. Best-effort: losing an entry never fails a request.
type GenerationLog struct {
	UserID       uint      `bson:"user_id" json:"user_id"`
	ZodiacSign   string    `bson:"zodiac_sign" json:"zodiac_sign"`
	TimeRange    string    `bson:"time_range" json:"time_range"`
	FortuneType  string    `bson:"fortune_type" json:"fortune_type"`
	Model        string    `bson:"model" json:"model"`
	ContentChars int       `bson:"content_chars" json:"content_chars"`
	LatencyMS    int64     `bson:"latency_ms" json:"latency_ms"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
