package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/config"
	"github.com/scrapdesk/admin-api/internal/database"
	"github.com/scrapdesk/admin-api/internal/handlers"
	authmw "github.com/scrapdesk/admin-api/internal/middleware"
	"github.com/scrapdesk/admin-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	client := backend.New(cfg.BackendAPIURL, cfg.BackendTimeout)

	jwtService := services.NewJWTService(cfg.SessionSecret, cfg.SessionExpiry)
	sessionService := services.NewSessionService(db)
	imageService := services.NewImageService(cfg.UploadsBaseURL())
	authService := services.NewAuthService(client, sessionService, jwtService)
	categoryService := services.NewCategoryService(client, sessionService, imageService)
	requestService := services.NewRequestService(client, sessionService)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, imageService)
	requestHandler := handlers.NewRequestHandler(requestService, imageService)
	imageHandler := handlers.NewImageHandler(imageService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService, sessionService))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/reset-password", authHandler.ResetPassword)

	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)

	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", categoryHandler.Create)
	protected.Get("/categories/:id", categoryHandler.Get)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", categoryHandler.Delete)
	protected.Patch("/categories/:id/status", categoryHandler.ToggleStatus)

	protected.Get("/requests", requestHandler.List)
	protected.Get("/requests/:id", requestHandler.Get)
	protected.Put("/requests/:id/status", requestHandler.UpdateStatus)
	protected.Put("/requests/:id/weights", requestHandler.UpdateWeights)

	protected.Post("/images/:key/failed", imageHandler.MarkFailed)
	protected.Post("/images/:key/loaded", imageHandler.MarkLoaded)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = sessionService.DeleteExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
