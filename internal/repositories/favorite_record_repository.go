package repositories

import (
	"errors"

	"github.com/astroverse/fortune-backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRecordRepository defines the interface for favorite operations
type FavoriteRecordRepository interface {
	AddFavorite(favorite *models.FavoriteRecord) error
	RemoveFavorite(userID, recordID uint) error
	IsFavorited(userID, recordID uint) (bool, error)
	ListFavoritesByUser(userID uint, page, limit int) ([]models.FavoriteRecord, int64, error)
	CountByUser(userID uint) (int64, error)
}

// PostgresFavoriteRecordRepository implements FavoriteRecordRepository
type PostgresFavoriteRecordRepository struct {
	db *gorm.DB
}

func NewPostgresFavoriteRecordRepository(db *gorm.DB) *PostgresFavoriteRecordRepository {
	return &PostgresFavoriteRecordRepository{db: db}
}

// AddFavorite inserts the (user, record) pair. The composite unique index is
// the authority on duplicates, so a concurrent double-insert that slips past
// the existence check still resolves to exactly one row.
func (r *PostgresFavoriteRecordRepository) AddFavorite(favorite *models.FavoriteRecord) error {
	exists, err := r.IsFavorited(favorite.UserID, favorite.FortuneRecordID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateFavorite
	}
	err = r.db.Create(favorite).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateFavorite
	}
	return err
}

// RemoveFavorite deletes by (user, record) pair. Idempotent: removing a
// non-existent favorite is not an error.
func (r *PostgresFavoriteRecordRepository) RemoveFavorite(userID, recordID uint) error {
	return r.db.Where("user_id = ? AND fortune_record_id = ?", userID, recordID).
		Delete(&models.FavoriteRecord{}).Error
}

func (r *PostgresFavoriteRecordRepository) IsFavorited(userID, recordID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FavoriteRecord{}).
		Where("user_id = ? AND fortune_record_id = ?", userID, recordID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFavoriteRecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FavoriteRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListFavoritesByUser returns one page of favorites with their fortune
// records preloaded, newest favorite first.
func (r *PostgresFavoriteRecordRepository) ListFavoritesByUser(userID uint, page, limit int) ([]models.FavoriteRecord, int64, error) {
	var total int64
	if err := r.db.Model(&models.FavoriteRecord{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []models.FavoriteRecord
	offset := (page - 1) * limit
	err := r.db.Preload("FortuneRecord").
		Where("user_id = ?", userID).
		Order("favorited_at DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
