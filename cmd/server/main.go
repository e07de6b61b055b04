// @title PrequaliQ Backend API
// @version 1.0
// @description Supplier pre-qualification portal - procuring entities publish CPV-tagged questionnaires, suppliers respond and submit for qualification
// @termsOfService http://swagger.io/terms/

// @contact.name PrequaliQ Support
// @contact.email support@prequaliq.example

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

// Package main is the entry point for the PrequaliQ Backend API server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/auth"
	"github.com/prequaliq/prequaliq_backend/internal/config"
	"github.com/prequaliq/prequaliq_backend/internal/database"
	"github.com/prequaliq/prequaliq_backend/internal/handlers"
	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
	"github.com/prequaliq/prequaliq_backend/internal/services"

	// Swagger docs
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/prequaliq/prequaliq_backend/docs"
)

// Build-time variables (set via ldflags)
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	ctx := context.Background()
	dbCfg := database.Config{
		URI:                    cfg.DatabaseURI,
		Database:               cfg.DatabaseName,
		MaxPoolSize:            100,
		MinPoolSize:            10,
		MaxConnIdleTime:        30 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 10 * time.Second,
	}

	dbClient, err := database.NewClient(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize JWT service early (before defer) to avoid exitAfterDefer issue
	jwtCfg := auth.JWTConfig{
		PrivateKeyPath:     cfg.JWTPrivateKeyPath,
		PublicKeyPath:      cfg.JWTPublicKeyPath,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		Issuer:             "prequaliq-backend",
	}

	jwtService, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	defer func() {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
	}()

	// Ensure indexes
	log.Println("Creating database indexes...")
	if indexErr := dbClient.EnsureIndexes(ctx); indexErr != nil {
		log.Printf("Warning: Failed to create indexes: %v", indexErr)
	}

	// Seed reference catalogs (CPV and NUTS codes)
	if cfg.SeedReferenceData {
		log.Println("Seeding reference data...")
		if seedErr := dbClient.SeedData(ctx); seedErr != nil {
			log.Printf("Warning: Failed to seed reference data: %v", seedErr)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbClient)
	supplierRepo := repository.NewSupplierRepository(dbClient)
	entityRepo := repository.NewProcuringEntityRepository(dbClient)
	referenceRepo := repository.NewReferenceRepository(dbClient)
	questionnaireRepo := repository.NewQuestionnaireRepository(dbClient)
	questionRepo := repository.NewQuestionRepository(dbClient)
	responseRepo := repository.NewResponseRepository(dbClient)
	answerRepo := repository.NewAnswerRepository(dbClient)
	documentRepo := repository.NewDocumentRepository(dbClient)
	announcementRepo := repository.NewAnnouncementRepository(dbClient)

	// Initialize password hashing
	passwordService := auth.NewPasswordService()

	// Initialize document storage
	documentService, err := services.NewDocumentService(documentRepo, services.DocumentConfig{
		UploadDir:        cfg.UploadDir,
		MaxUploadSize:    cfg.MaxUploadSize,
		AllowedMimeTypes: cfg.AllowedMimeTypes,
	})
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService(
		userRepo,
		supplierRepo,
		entityRepo,
		jwtService,
		passwordService,
	)

	accountService := services.NewAccountService(userRepo, supplierRepo)

	questionnaireService := services.NewQuestionnaireService(
		dbClient,
		questionnaireRepo,
		questionRepo,
		responseRepo,
		answerRepo,
		referenceRepo,
	)

	responseService := services.NewResponseService(
		dbClient,
		responseRepo,
		answerRepo,
		questionnaireRepo,
		questionRepo,
		supplierRepo,
		documentService,
	)

	announcementService := services.NewAnnouncementService(announcementRepo)
	referenceService := services.NewReferenceService(referenceRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	questionnaireHandler := handlers.NewQuestionnaireHandler(questionnaireService)
	responseHandler := handlers.NewResponseHandler(responseService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	referenceHandler := handlers.NewReferenceHandler(referenceService)
	healthHandler := handlers.NewHealthHandler(dbClient)

	// Create Gin router
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecureHeaders())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router.Use(rateLimiter.RateLimit())

	// Register health routes (not under /api/v1)
	healthHandler.RegisterRoutes(router)

	// Register Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create API v1 group
	apiV1 := router.Group("/api/v1")

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Register routes
	authHandler.RegisterRoutes(apiV1, authMiddleware)
	accountHandler.RegisterRoutes(apiV1, authMiddleware)
	questionnaireHandler.RegisterRoutes(apiV1, authMiddleware)
	responseHandler.RegisterRoutes(apiV1, authMiddleware)
	documentHandler.RegisterRoutes(apiV1, authMiddleware)
	announcementHandler.RegisterRoutes(apiV1, authMiddleware)
	referenceHandler.RegisterRoutes(apiV1)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting PrequaliQ Backend API server v%s on port %s", Version, cfg.ServerPort)
		log.Printf("Build: %s | Commit: %s", BuildTime, GitCommit)
		log.Printf("Environment: %s", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown complete")
}
