package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/config"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/handler"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/metrics"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/middleware"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/repository"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/service"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHours := int64(24)
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		} else {
			jwtExpHours = parsed
		}
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	bootstrapPassword := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if bootstrapPassword == "" {
		bootstrapPassword = "admin123"
		log.Println("BOOTSTRAP_ADMIN_PASSWORD not set, using the default for first-time setup")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)
	appMetrics := metrics.New()

	// --- Initialize Repositories ---
	officerRepo := repository.NewOfficerRepository(dbPool)
	adminRepo := repository.NewAdminRepository(dbPool)

	// --- Initialize Services ---
	officerService := service.NewOfficerService(officerRepo, appMetrics)
	authService := service.NewAuthService(adminRepo, jwtUtil, bootstrapPassword)

	// --- Initialize Handlers ---
	officerHandler := handler.NewOfficerHandler(officerService)
	authHandler := handler.NewAuthHandler(authService)

	// --- Setup Gin Router ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Simple CORS middleware (allow all; the public form posts cross-origin)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
	router.Use(middleware.RequestMetrics(appMetrics))

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.Authorize(model.RoleAdmin, model.RoleSuperAdmin)
	superAdminMW := middleware.Authorize(model.RoleSuperAdmin)

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	officerHandler.RegisterOfficerRoutes(apiGroup, jwtAuthMW, adminMW, superAdminMW)
	authHandler.RegisterAuthRoutes(apiGroup)
	authHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, superAdminMW)

	// Intake form and dashboard assets, when deployed alongside the API
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "public"
	}
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		router.Static("/portal", staticDir)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
