// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/grupohub/grupohub-backend/internal/api/handlers"
	"github.com/grupohub/grupohub-backend/internal/api/middleware"
	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/cron"
	"github.com/grupohub/grupohub-backend/internal/db"
	"github.com/grupohub/grupohub-backend/internal/email"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/seed"
	"github.com/grupohub/grupohub-backend/internal/service"
	"github.com/grupohub/grupohub-backend/internal/sso"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	postgres, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(postgres.Pool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis token cache enabled")
		}
	}

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Initialize File Storage
	// ============================================
	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}
	log.Printf("🗄️  File storage at %s", store.Root())

	// ============================================
	// Initialize SSO Client (optional)
	// ============================================
	ssoClient := sso.NewClient(&sso.Config{
		BaseURL:      cfg.SSOBaseURL,
		ClientID:     cfg.SSOClientID,
		ClientSecret: cfg.SSOClientSecret,
		RedirectURL:  cfg.SSORedirectURL,
	})
	if ssoClient.Enabled() {
		log.Println("🔑 SSO login enabled")
	}

	// ============================================
	// Seed Data
	// ============================================
	seed.SeedData(repos)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		EmailSvc: emailSvc,
		Storage:  store,
		Redis:    redisDB,
		SSO:      ssoClient,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(cfg, repos.UserRepo)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"database":  "connected",
			"cache":     getCacheStatus(redisDB),
			"email":     getEmailStatus(emailSvc),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/sso", h.Auth.LoginSSO)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			protected.POST("/auth/logout", h.Auth.Logout)

			// User routes
			users := protected.Group("/users")
			{
				users.GET("/me", h.User.Me)
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.POST("/:id/restore", h.User.Restore)
			}

			// Role and category routes
			typeUsers := protected.Group("/group/type-user")
			{
				typeUsers.GET("", h.TypeUser.List)
				typeUsers.POST("", h.TypeUser.Create)
				typeUsers.GET("/:id", h.TypeUser.Get)
				typeUsers.PUT("/:id", h.TypeUser.Update)
				typeUsers.DELETE("/:id", h.TypeUser.Delete)
			}

			typeGroups := protected.Group("/group/type-group")
			{
				typeGroups.GET("", h.TypeGroup.List)
				typeGroups.POST("", h.TypeGroup.Create)
				typeGroups.GET("/:id", h.TypeGroup.Get)
				typeGroups.PUT("/:id", h.TypeGroup.Update)
				typeGroups.DELETE("/:id", h.TypeGroup.Delete)
			}

			// Group routes
			groups := protected.Group("/groups")
			{
				groups.GET("", h.Group.List)
				groups.POST("", h.Group.Create)
				groups.GET("/:id", h.Group.Get)
				groups.PUT("/:id", h.Group.Update)
				groups.DELETE("/:id", h.Group.Delete)

				// Members
				groups.GET("/:id/members", h.Member.ListByGroup)
				groups.POST("/:id/members", h.Member.Create)

				// Activities
				groups.GET("/:id/activities", h.Activity.ListByGroup)
				groups.POST("/:id/activities", h.Activity.Create)

				// Documents
				groups.GET("/:id/documents", h.Document.ListByGroup)
				groups.POST("/:id/documents", h.Document.Upload)

				// Meetings
				groups.GET("/:id/meetings", h.Meeting.ListByGroup)
				groups.POST("/:id/meetings", h.Meeting.Create)

				// Notes
				groups.GET("/:id/notes", h.Note.ListByGroup)
				groups.POST("/:id/notes", h.Note.Create)

				// Report export
				groups.GET("/:id/report", h.Report.Export)
			}

			// Member routes
			members := protected.Group("/members")
			{
				members.GET("/:id", h.Member.Get)
				members.PUT("/:id", h.Member.Update)
				members.DELETE("/:id", h.Member.Delete)
			}

			// Activity routes
			activities := protected.Group("/activities")
			{
				activities.GET("/:id", h.Activity.Get)
				activities.PUT("/:id", h.Activity.Update)
				activities.DELETE("/:id", h.Activity.Delete)
			}

			// Document routes
			documents := protected.Group("/documents")
			{
				documents.GET("/:id", h.Document.Get)
				documents.GET("/:id/download", h.Document.Download)
				documents.PUT("/:id", h.Document.Update)
				documents.DELETE("/:id", h.Document.Delete)
			}

			// Meeting routes
			meetings := protected.Group("/meetings")
			{
				meetings.GET("/:id", h.Meeting.Get)
				meetings.GET("/:id/download", h.Meeting.Download)
				meetings.PUT("/:id", h.Meeting.Update)
				meetings.DELETE("/:id", h.Meeting.Delete)
			}

			// Note routes
			notes := protected.Group("/notes")
			{
				notes.GET("/:id", h.Note.Get)
				notes.PUT("/:id", h.Note.Update)
				notes.DELETE("/:id", h.Note.Delete)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
