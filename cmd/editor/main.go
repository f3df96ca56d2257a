package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"imagemap-studio/internal/common/config"
	"imagemap-studio/internal/common/logging"
	"imagemap-studio/internal/common/middleware"
	"imagemap-studio/internal/editor/handlers"
	"imagemap-studio/internal/editor/repository"
	"imagemap-studio/internal/editor/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Image Map Editor Service
// ============================================================

func main() {
	cfg := config.Load()

	closeLog, err := logging.Init(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer closeLog()

	db, err := repository.OpenSQLite(cfg.ExportDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	store := service.NewStore()
	images := service.NewImageStorage(cfg.ImageRoot)
	editorHandler := handlers.NewEditorHandler(store, images, repo, handlers.Limits{
		MaxImagePixels:   cfg.MaxImagePixels,
		MaxOverlayPixels: cfg.MaxOverlayPixels,
	})
	healthHandler := handlers.NewHealthHandler(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.SessionIdleMin > 0 {
		go store.RunJanitor(ctx, time.Minute, time.Duration(cfg.SessionIdleMin)*time.Minute, func(id string) {
			if err := images.Remove(id); err != nil {
				slog.Warn("[STORAGE] remove expired session images", "session", id, "error", err)
			}
		})
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Image Map Studio",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check & Docs Routes
	// ============================================================

	handlers.RegisterHealth(app, healthHandler)
	handlers.RegisterDocs(app)

	// ============================================================
	// API Routes
	// ============================================================

	handlers.Register(app.Group("/api/v1"), editorHandler)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("[EDITOR] starting", "addr", addr, "env", cfg.Environment)
	slog.Info("[EDITOR] storage", "images", cfg.ImageRoot, "exports_db", cfg.ExportDBPath)

	if err := app.Listen(addr); err != nil {
		slog.Error("[EDITOR] server stopped", "error", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}
