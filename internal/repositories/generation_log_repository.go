package repositories

import (
	"context"
	"time"

	"github.com/astroverse/fortune-backend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// GenerationLogRepository appends audit entries for completed generations.
type GenerationLogRepository interface {
	LogGeneration(ctx context.Context, entry *models.GenerationLog) error
}

// MongoGenerationLogRepository implements GenerationLogRepository on the
// generation_logs collection.
type MongoGenerationLogRepository struct {
	collection *mongo.Collection
}

func NewMongoGenerationLogRepository(db *mongo.Database) *MongoGenerationLogRepository {
	return &MongoGenerationLogRepository{collection: db.Collection("generation_logs")}
}

func (r *MongoGenerationLogRepository) LogGeneration(ctx context.Context, entry *models.GenerationLog) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}
