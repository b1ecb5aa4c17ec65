package repositories

import (
	"errors"
	"time"

	"github.com/astroverse/fortune-backend/internal/models"
	"gorm.io/gorm"
)

// FortuneRecordRepository defines the interface for fortune record operations
type FortuneRecordRepository interface {
	CreateRecord(record *models.FortuneRecord) error
	GetRecordByID(id uint) (*models.FortuneRecord, error)
	ListRecordsByUser(userID uint, timeRange, fortuneType string, page, limit int) ([]models.FortuneRecord, int64, error)
	DeleteRecord(recordID, userID uint) error
	CountByUser(userID uint) (int64, error)
	CountByUserSince(userID uint, since time.Time) (int64, error)
	CountByUserPerType(userID uint) (map[string]int64, error)
}

// PostgresFortuneRecordRepository implements FortuneRecordRepository
type PostgresFortuneRecordRepository struct {
	db *gorm.DB
}

func NewPostgresFortuneRecordRepository(db *gorm.DB) *PostgresFortuneRecordRepository {
	return &PostgresFortuneRecordRepository{db: db}
}

func (r *PostgresFortuneRecordRepository) CreateRecord(record *models.FortuneRecord) error {
	return r.db.Create(record).Error
}

func (r *PostgresFortuneRecordRepository) GetRecordByID(id uint) (*models.FortuneRecord, error) {
	var record models.FortuneRecord
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecordsByUser returns one page of a user's records, newest first.
// The total applies the same timeRange/fortuneType filters as the page query.
func (r *PostgresFortuneRecordRepository) ListRecordsByUser(userID uint, timeRange, fortuneType string, page, limit int) ([]models.FortuneRecord, int64, error) {
	query := r.db.Model(&models.FortuneRecord{}).Where("user_id = ?", userID)
	if timeRange != "" {
		query = query.Where("time_range = ?", timeRange)
	}
	if fortuneType != "" {
		query = query.Where("fortune_type = ?", fortuneType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.FortuneRecord
	offset := (page - 1) * limit
	if err := query.Order("generated_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// DeleteRecord removes a record and its favorites in one transaction. Only
// the owning user may delete; favorites go first to satisfy the foreign key.
func (r *PostgresFortuneRecordRepository) DeleteRecord(recordID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var record models.FortuneRecord
		if err := tx.First(&record, recordID).Error; err != nil {
			return err
		}
		if record.UserID != userID {
			return ErrForbidden
		}
		if err := tx.Where("fortune_record_id = ?", recordID).Delete(&models.FavoriteRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FortuneRecord{}, recordID).Error
	})
}

func (r *PostgresFortuneRecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FortuneRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFortuneRecordRepository) CountByUserSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.FortuneRecord{}).
		Where("user_id = ? AND generated_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// CountByUserPerType breaks a user's records down by fortune type.
func (r *PostgresFortuneRecordRepository) CountByUserPerType(userID uint) (map[string]int64, error) {
	type row struct {
		FortuneType string
		Count       int64
	}
	var rows []row
	err := r.db.Model(&models.FortuneRecord{}).
		Select("fortune_type, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("fortune_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.FortuneType] = r.Count
	}
	return counts, nil
}

// IsNotFound reports whether err is the store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
