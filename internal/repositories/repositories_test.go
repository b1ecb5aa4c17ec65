package repositories

import (
	"testing"
	"time"

	"github.com/astroverse/fortune-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FortuneRecord{},
		&models.FavoriteRecord{},
		&models.UserPreferences{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "测试用户", Email: email, BirthDate: "1990-06-15", ZodiacSign: "gemini"}
	require.NoError(t, NewPostgresUserRepository(db).CreateUser(user))
	return user
}

func seedRecord(t *testing.T, db *gorm.DB, userID uint, timeRange, fortuneType string, generatedAt time.Time) *models.FortuneRecord {
	t.Helper()
	record := &models.FortuneRecord{
		UserID:      userID,
		ZodiacSign:  "gemini",
		TimeRange:   timeRange,
		FortuneType: fortuneType,
		Content:     "今日宜保持好心情。",
		GeneratedAt: generatedAt,
	}
	require.NoError(t, NewPostgresFortuneRecordRepository(db).CreateRecord(record))
	return record
}

func TestAddFavorite_RejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	record := seedRecord(t, db, user.ID, "daily", "general", time.Now())
	repo := NewPostgresFavoriteRecordRepository(db)

	err := repo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()})
	require.NoError(t, err)

	err = repo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicateFavorite)

	var count int64
	db.Model(&models.FavoriteRecord{}).Count(&count)
	assert.EqualValues(t, 1, count, "duplicate must not create a second row")
}

func TestRemoveFavorite_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	record := seedRecord(t, db, user.ID, "daily", "general", time.Now())
	repo := NewPostgresFavoriteRecordRepository(db)

	require.NoError(t, repo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()}))
	require.NoError(t, repo.RemoveFavorite(user.ID, record.ID))
	// Second removal of the same pair is a no-op, not an error.
	require.NoError(t, repo.RemoveFavorite(user.ID, record.ID))

	favorited, err := repo.IsFavorited(user.ID, record.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestDeleteRecord_ForbiddenForNonOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	record := seedRecord(t, db, owner.ID, "daily", "general", time.Now())

	favRepo := NewPostgresFavoriteRecordRepository(db)
	require.NoError(t, favRepo.AddFavorite(&models.FavoriteRecord{UserID: owner.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()}))

	recordRepo := NewPostgresFortuneRecordRepository(db)
	err := recordRepo.DeleteRecord(record.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Record and its favorite are untouched.
	_, err = recordRepo.GetRecordByID(record.ID)
	require.NoError(t, err)
	favorited, err := favRepo.IsFavorited(owner.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestDeleteRecord_CascadesFavorites(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	record := seedRecord(t, db, owner.ID, "daily", "general", time.Now())

	favRepo := NewPostgresFavoriteRecordRepository(db)
	require.NoError(t, favRepo.AddFavorite(&models.FavoriteRecord{UserID: owner.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()}))

	recordRepo := NewPostgresFortuneRecordRepository(db)
	require.NoError(t, recordRepo.DeleteRecord(record.ID, owner.ID))

	_, err := recordRepo.GetRecordByID(record.ID)
	assert.True(t, IsNotFound(err))

	var favCount int64
	db.Model(&models.FavoriteRecord{}).Where("fortune_record_id = ?", record.ID).Count(&favCount)
	assert.Zero(t, favCount)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")

	err := NewPostgresFortuneRecordRepository(db).DeleteRecord(9999, user.ID)
	assert.True(t, IsNotFound(err))
}

func TestListRecordsByUser_FilterAndPagination(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedRecord(t, db, user.ID, "daily", "general", base.Add(time.Duration(i)*time.Hour))
	}
	seedRecord(t, db, user.ID, "weekly", "love", base.Add(10*time.Hour))

	repo := NewPostgresFortuneRecordRepository(db)

	// Unfiltered: newest first, paginated, total counts everything.
	page1, total, err := repo.ListRecordsByUser(user.ID, "", "", 1, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, page1, 4)
	assert.Equal(t, "love", page1[0].FortuneType)
	for i := 1; i < len(page1); i++ {
		assert.False(t, page1[i].GeneratedAt.After(page1[i-1].GeneratedAt), "ordered generated_at DESC")
	}

	page2, _, err := repo.ListRecordsByUser(user.ID, "", "", 2, 4)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	// Filtered: total reflects the same filters as the page query.
	daily, dailyTotal, err := repo.ListRecordsByUser(user.ID, "daily", "general", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, dailyTotal)
	assert.Len(t, daily, 5)
}

func TestListFavoritesByUser_PreloadsRecords(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	favRepo := NewPostgresFavoriteRecordRepository(db)

	first := seedRecord(t, db, user.ID, "daily", "general", time.Now())
	second := seedRecord(t, db, user.ID, "weekly", "career", time.Now())

	require.NoError(t, favRepo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: first.ID, FavoritedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, favRepo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: second.ID, FavoritedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}))

	favorites, total, err := favRepo.ListFavoritesByUser(user.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, favorites, 2)
	assert.Equal(t, second.ID, favorites[0].FortuneRecordID, "newest favorite first")
	require.NotNil(t, favorites[0].FortuneRecord)
	assert.Equal(t, "career", favorites[0].FortuneRecord.FortuneType)
}

func TestCountsForStats(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	repo := NewPostgresFortuneRecordRepository(db)
	now := time.Now().UTC()

	seedRecord(t, db, user.ID, "daily", "general", now.AddDate(0, 0, -10))
	seedRecord(t, db, user.ID, "daily", "love", now.AddDate(0, 0, -2))
	seedRecord(t, db, user.ID, "weekly", "love", now.AddDate(0, 0, -1))

	total, err := repo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	recent, err := repo.CountByUserSince(user.ID, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.EqualValues(t, 2, recent)

	perType, err := repo.CountByUserPerType(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, perType["love"])
	assert.EqualValues(t, 1, perType["general"])
}

func TestPreferences_CreateGetUpdate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	repo := NewPostgresPreferencesRepository(db)

	require.NoError(t, repo.CreatePreferences(models.DefaultPreferences(user.ID)))

	prefs, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "daily", prefs.DefaultTimeRange)
	assert.Equal(t, "general", prefs.DefaultFortuneType)
	assert.True(t, prefs.NotificationsEnabled)
	assert.Equal(t, "light", prefs.Theme)

	prefs.DefaultFortuneType = "career"
	prefs.NotificationsEnabled = false
	require.NoError(t, repo.UpdatePreferences(prefs))

	updated, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "career", updated.DefaultFortuneType)
	assert.False(t, updated.NotificationsEnabled)
}

func TestDeleteAccount_CascadesAllTables(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "a@example.com")
	keeper := seedUser(t, db, "keeper@example.com")

	prefsRepo := NewPostgresPreferencesRepository(db)
	require.NoError(t, prefsRepo.CreatePreferences(models.DefaultPreferences(user.ID)))
	require.NoError(t, prefsRepo.CreatePreferences(models.DefaultPreferences(keeper.ID)))

	favRepo := NewPostgresFavoriteRecordRepository(db)
	for i := 0; i < 3; i++ {
		record := seedRecord(t, db, user.ID, "daily", "general", time.Now())
		if i < 2 {
			require.NoError(t, favRepo.AddFavorite(&models.FavoriteRecord{UserID: user.ID, FortuneRecordID: record.ID, FavoritedAt: time.Now()}))
		}
	}
	keeperRecord := seedRecord(t, db, keeper.ID, "daily", "general", time.Now())

	require.NoError(t, NewPostgresAccountRepository(db).DeleteAccount(user.ID))

	var count int64
	db.Model(&models.FavoriteRecord{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.FortuneRecord{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.UserPreferences{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	_, err := NewPostgresUserRepository(db).GetUserByID(user.ID)
	assert.True(t, IsNotFound(err))

	// Other users are untouched.
	_, err = NewPostgresUserRepository(db).GetUserByID(keeper.ID)
	require.NoError(t, err)
	_, err = NewPostgresFortuneRecordRepository(db).GetRecordByID(keeperRecord.ID)
	require.NoError(t, err)
	_, err = prefsRepo.GetByUserID(keeper.ID)
	require.NoError(t, err)
}
