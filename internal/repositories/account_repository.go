package repositories

import (
	"github.com/astroverse/fortune-backend/internal/models"
	"gorm.io/gorm"
)

// AccountRepository owns the compound account-deletion cascade.
type AccountRepository interface {
	DeleteAccount(userID uint) error
}

// PostgresAccountRepository implements AccountRepository
type PostgresAccountRepository struct {
	db *gorm.DB
}

func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// DeleteAccount removes everything a user owns in one transaction, in
// foreign-key order: favorites, fortune records, preferences, then the user
// row itself. All-or-nothing, so a failed cascade leaves the account intact.
func (r *PostgresAccountRepository) DeleteAccount(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.FavoriteRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FortuneRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPreferences{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
