package models

import "time"

// FavoriteRecord links a user to a bookmarked fortune record. The composite
// unique index enforces at most one favorite per (user, record) pair at the
// storage layer, so a concurrent duplicate loses on insert.
type FavoriteRecord struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;uniqueIndex:idx_user_fortune_fav"`
	FortuneRecordID uint           `json:"fortune_record_id" gorm:"index;uniqueIndex:idx_user_fortune_fav"`
	FavoritedAt     time.Time      `json:"favorited_at"`
	FortuneRecord   *FortuneRecord `json:"fortune_record,omitempty" gorm:"foreignKey:FortuneRecordID"`
}

type FavoriteRequest struct {
	FortuneRecordID uint `json:"fortuneRecordId" validate:"required"`
}
