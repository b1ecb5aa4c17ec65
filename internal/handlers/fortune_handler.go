package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/astroverse/fortune-backend/internal/fortune"
	"github.com/astroverse/fortune-backend/internal/models"
	"github.com/astroverse/fortune-backend/internal/repositories"
	"github.com/astroverse/fortune-backend/internal/zodiac"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FortuneHandler handles fortune generation, history and favorites.
type FortuneHandler struct {
	fortuneService     *fortune.Service
	providerModel      string
	userRepository     repositories.UserRepository
	recordRepository   repositories.FortuneRecordRepository
	favoriteRepository repositories.FavoriteRecordRepository
	logRepository      repositories.GenerationLogRepository
}

// NewFortuneHandler creates a new FortuneHandler
func NewFortuneHandler(
	fortuneService *fortune.Service,
	providerModel string,
	userRepo repositories.UserRepository,
	recordRepo repositories.FortuneRecordRepository,
	favoriteRepo repositories.FavoriteRecordRepository,
	logRepo repositories.GenerationLogRepository,
) *FortuneHandler {
	return &FortuneHandler{
		fortuneService:     fortuneService,
		providerModel:      providerModel,
		userRepository:     userRepo,
		recordRepository:   recordRepo,
		favoriteRepository: favoriteRepo,
		logRepository:      logRepo,
	}
}

// RegisterFortuneRoutes registers fortune routes
func (h *FortuneHandler) RegisterFortuneRoutes(g *echo.Group) {
	g.POST("/fortune/generate", h.GenerateFortune)
	g.GET("/fortune/history", h.GetHistory)
	g.POST("/fortune/favorite", h.AddFavorite)
	g.DELETE("/fortune/favorite", h.RemoveFavorite)
	g.GET("/fortune/favorites", h.GetFavorites)
	g.DELETE("/fortune/:id", h.DeleteRecord)
}

// GenerateFortune resolves the user's sign, asks the generation service for
// text and persists the result as a fortune record.
func (h *FortuneHandler) GenerateFortune(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.GenerateFortuneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.BirthDate != "" && !zodiac.IsPlausibleBirthDate(req.BirthDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "Birth date must be YYYY-MM-DD and not in the future")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Sign precedence: request birth date, then stored sign, then stored
	// birth date. Without any of these, generation must not proceed.
	sign := zodiac.Key("")
	switch {
	case req.BirthDate != "":
		date, _ := zodiac.ParseBirthDate(req.BirthDate)
		sign = zodiac.ResolveSign(date)
	case user.ZodiacSign != "":
		sign = zodiac.Key(user.ZodiacSign)
	case user.BirthDate != "":
		if date, err := zodiac.ParseBirthDate(user.BirthDate); err == nil {
			sign = zodiac.ResolveSign(date)
		}
	}
	if sign == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Zodiac sign could not be determined, please provide a birth date")
	}

	name := req.Name
	if name == "" {
		name = user.Name
	}

	started := time.Now()
	content, err := h.fortuneService.Generate(c.Request().Context(), fortune.Request{
		Name:      name,
		Sign:      sign,
		BirthDate: req.BirthDate,
		Horizon:   fortune.Horizon(req.TimeRange),
		Category:  fortune.Category(req.FortuneType),
	})
	latency := time.Since(started)
	if err != nil {
		if errors.Is(err, fortune.ErrMissingZodiacInfo) {
			return echo.NewHTTPError(http.StatusBadRequest, "Zodiac sign could not be determined, please provide a birth date")
		}
		if errors.Is(err, fortune.ErrGeneration) {
			return echo.NewHTTPError(http.StatusBadGateway, "Fortune generation failed, please try again later")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record := &models.FortuneRecord{
		UserID:      currentUserID,
		ZodiacSign:  string(sign),
		TimeRange:   req.TimeRange,
		FortuneType: req.FortuneType,
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}
	if err := h.recordRepository.CreateRecord(record); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save fortune record")
	}

	// Audit log is best-effort; never fail the request over it.
	if err := h.logRepository.LogGeneration(c.Request().Context(), &models.GenerationLog{
		UserID:      currentUserID,
		ZodiacSign:  string(sign),
		TimeRange:   req.TimeRange,
		FortuneType: req.FortuneType,
		Model:       h.providerModel,
		ContentChars: len([]rune(content)),
		LatencyMS:   latency.Milliseconds(),
	}); err != nil {
		log.Printf("Failed to write generation log: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "fortune": record})
}

// GetHistory returns the caller's fortune records, filterable by time range
// and fortune type, newest first.
func (h *FortuneHandler) GetHistory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c)

	timeRange := c.QueryParam("timeRange")
	if timeRange != "" && fortune.HorizonLabel(fortune.Horizon(timeRange)) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid timeRange filter")
	}
	fortuneType := c.QueryParam("fortuneType")
	if fortuneType != "" && fortune.CategoryLabel(fortune.Category(fortuneType)) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid fortuneType filter")
	}

	records, total, err := h.recordRepository.ListRecordsByUser(currentUserID, timeRange, fortuneType, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"records": records},
		"meta":    paginationMeta(page, limit, total),
	})
}

// AddFavorite bookmarks a fortune record for the caller.
func (h *FortuneHandler) AddFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify the record exists
	if _, err := h.recordRepository.GetRecordByID(req.FortuneRecordID); err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Fortune record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	favorite := &models.FavoriteRecord{
		UserID:          currentUserID,
		FortuneRecordID: req.FortuneRecordID,
		FavoritedAt:     time.Now().UTC(),
	}
	if err := h.favoriteRepository.AddFavorite(favorite); err != nil {
		if errors.Is(err, repositories.ErrDuplicateFavorite) {
			return echo.NewHTTPError(http.StatusConflict, "Fortune record already favorited")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "favorite": favorite})
}

// RemoveFavorite removes a bookmark; removing a non-existent one succeeds.
func (h *FortuneHandler) RemoveFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.favoriteRepository.RemoveFavorite(currentUserID, req.FortuneRecordID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetFavorites returns the caller's favorites with their records, newest
// favorite first.
func (h *FortuneHandler) GetFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c)

	favorites, total, err := h.favoriteRepository.ListFavoritesByUser(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"favorites": favorites},
		"meta":    paginationMeta(page, limit, total),
	})
}

// DeleteRecord deletes one of the caller's fortune records together with any
// favorites pointing at it.
func (h *FortuneHandler) DeleteRecord(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid record ID")
	}

	if err := h.recordRepository.DeleteRecord(uint(recordID), currentUserID); err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Fortune record not found")
		}
		if errors.Is(err, repositories.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "No permission to delete this record")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":  page,
		"totalPages":   totalPages,
		"totalItems":   total,
		"itemsPerPage": limit,
	}
}
