package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/astroverse/fortune-backend/internal/fortune"
	"github.com/astroverse/fortune-backend/internal/handlers"
	"github.com/astroverse/fortune-backend/internal/middleware"
	"github.com/astroverse/fortune-backend/internal/models"
	"github.com/astroverse/fortune-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, fortuneService *fortune.Service, providerModel string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FortuneRecord{},
		&models.FavoriteRecord{},
		&models.UserPreferences{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	recordRepo := repositories.NewPostgresFortuneRecordRepository(pgdb)
	favoriteRepo := repositories.NewPostgresFavoriteRecordRepository(pgdb)
	prefsRepo := repositories.NewPostgresPreferencesRepository(pgdb)
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)
	generationLogRepo := repositories.NewMongoGenerationLogRepository(mgClient.Database("astroverse"))

	// Health check - always accessible
	healthHandler := handlers.NewHealthHandler(fortuneService)
	e.GET("/health", healthHandler.HealthCheck)

	// Static zodiac catalogue - always accessible
	e.GET("/api/v1/zodiac/signs", handlers.ListZodiacSigns)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, prefsRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Fortune routes
	fortuneHandler := handlers.NewFortuneHandler(fortuneService, providerModel, userRepo, recordRepo, favoriteRepo, generationLogRepo)
	fortuneHandler.RegisterFortuneRoutes(api)
	log.Println("Fortune routes configured.")

	// User profile, preferences, stats and account routes
	userHandler := handlers.NewUserHandler(userRepo, prefsRepo, recordRepo, favoriteRepo, accountRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	log.Println("All routes configured.")
}
