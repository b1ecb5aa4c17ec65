package main

import (
	"context"
	"log"

	"github.com/astroverse/fortune-backend/internal/fortune"
	"github.com/astroverse/fortune-backend/internal/router"
	"github.com/astroverse/fortune-backend/pkg/config"
	"github.com/astroverse/fortune-backend/pkg/firebase"
	"github.com/astroverse/fortune-backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize the fortune generation service
	provider := fortune.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	fortuneService := fortune.NewService(provider)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseApp.AuthClient, fortuneService, provider.Model())

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
