package repositories

import (
	"github.com/astroverse/fortune-backend/internal/models"
	"gorm.io/gorm"
)

// PreferencesRepository defines the interface for user preference operations
type PreferencesRepository interface {
	CreatePreferences(prefs *models.UserPreferences) error
	GetByUserID(userID uint) (*models.UserPreferences, error)
	UpdatePreferences(prefs *models.UserPreferences) error
}

// PostgresPreferencesRepository implements PreferencesRepository
type PostgresPreferencesRepository struct {
	db *gorm.DB
}

func NewPostgresPreferencesRepository(db *gorm.DB) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{db: db}
}

func (r *PostgresPreferencesRepository) CreatePreferences(prefs *models.UserPreferences) error {
	return r.db.Create(prefs).Error
}

func (r *PostgresPreferencesRepository) GetByUserID(userID uint) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := r.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *PostgresPreferencesRepository) UpdatePreferences(prefs *models.UserPreferences) error {
	return r.db.Save(prefs).Error
}
