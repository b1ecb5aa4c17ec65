package handlers

import (
	"net/http"
	"time"

	"github.com/astroverse/fortune-backend/internal/models"
	"github.com/astroverse/fortune-backend/internal/repositories"
	"github.com/astroverse/fortune-backend/internal/zodiac"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile, preferences, stats and account deletion.
type UserHandler struct {
	userRepository        repositories.UserRepository
	preferencesRepository repositories.PreferencesRepository
	recordRepository      repositories.FortuneRecordRepository
	favoriteRepository    repositories.FavoriteRecordRepository
	accountRepository     repositories.AccountRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	prefsRepo repositories.PreferencesRepository,
	recordRepo repositories.FortuneRecordRepository,
	favoriteRepo repositories.FavoriteRecordRepository,
	accountRepo repositories.AccountRepository,
) *UserHandler {
	return &UserHandler{
		userRepository:        userRepo,
		preferencesRepository: prefsRepo,
		recordRepository:      recordRepo,
		favoriteRepository:    favoriteRepo,
		accountRepository:     accountRepo,
	}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user/profile", h.GetProfile)
	g.PUT("/user/profile", h.UpdateProfile)
	g.GET("/user/preferences", h.GetPreferences)
	g.PUT("/user/preferences", h.UpdatePreferences)
	g.GET("/user/stats", h.GetStats)
	g.DELETE("/user/account", h.DeleteAccount)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial profile update. A birth date change
// recomputes the stored zodiac sign; clearing the birth date clears it.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			user.BirthDate = ""
			user.ZodiacSign = ""
		} else {
			if !zodiac.IsPlausibleBirthDate(*req.BirthDate) {
				return echo.NewHTTPError(http.StatusBadRequest, "Birth date must be YYYY-MM-DD and not in the future")
			}
			date, _ := zodiac.ParseBirthDate(*req.BirthDate)
			user.BirthDate = *req.BirthDate
			user.ZodiacSign = string(zodiac.ResolveSign(date))
		}
	}
	if req.BirthTime != nil {
		user.BirthTime = *req.BirthTime
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// GetPreferences retrieves the authenticated user's preferences
func (h *UserHandler) GetPreferences(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	prefs, err := h.preferencesRepository.GetByUserID(currentUserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Preferences not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences applies a partial preferences update.
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs, err := h.preferencesRepository.GetByUserID(currentUserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Preferences not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.DefaultTimeRange != nil {
		prefs.DefaultTimeRange = *req.DefaultTimeRange
	}
	if req.DefaultFortuneType != nil {
		prefs.DefaultFortuneType = *req.DefaultFortuneType
	}
	if req.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}

	if err := h.preferencesRepository.UpdatePreferences(prefs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, prefs)
}

// GetStats summarizes the user's records: totals, last 7 days, per-type.
func (h *UserHandler) GetStats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	totalRecords, err := h.recordRepository.CountByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalFavorites, err := h.favoriteRepository.CountByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	recentRecords, err := h.recordRepository.CountByUserSince(currentUserID, time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	perType, err := h.recordRepository.CountByUserPerType(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats": echo.Map{
			"totalFortuneRecords": totalRecords,
			"totalFavorites":      totalFavorites,
			"recentRecords":       recentRecords,
			"fortuneTypeStats":    perType,
		},
	})
}

// DeleteAccount removes the caller's account and everything it owns.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.accountRepository.DeleteAccount(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete account")
	}

	return c.NoContent(http.StatusNoContent)
}
