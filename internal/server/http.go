package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/stagetribe/stagetribe/internal/cache"
	"github.com/stagetribe/stagetribe/internal/config"
	"github.com/stagetribe/stagetribe/internal/database"
	"github.com/stagetribe/stagetribe/internal/domain/client"
	"github.com/stagetribe/stagetribe/internal/domain/level"
	"github.com/stagetribe/stagetribe/internal/domain/session"
	"github.com/stagetribe/stagetribe/internal/domain/user"
	"github.com/stagetribe/stagetribe/internal/migrations"
	"github.com/stagetribe/stagetribe/internal/push"
	"github.com/stagetribe/stagetribe/internal/storage"
)

// Start wires the application together and runs the HTTP server
func Start(cfg *config.Config) error {
	usersDB, err := database.OpenUsers(&cfg.Database)
	if err != nil {
		return err
	}
	levelsDB, err := database.OpenLevels(&cfg.Database)
	if err != nil {
		return err
	}
	slog.Info("Databases connected successfully")

	if err := migrations.RunMigrations(usersDB, levelsDB); err != nil {
		return err
	}
	slog.Info("Migrations completed successfully")

	provider, err := storage.New(&cfg.Storage, cfg.API.Root, levelsDB)
	if err != nil {
		return err
	}
	slog.Info("Storage provider selected", "provider", cfg.Storage.Provider)

	var stats *cache.Stats
	if cfg.Redis.Host != "" {
		stats, err = cache.NewStats(&cfg.Redis)
		if err != nil {
			return err
		}
		defer stats.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go stats.Run(ctx)
	}

	sessions := session.NewService(session.NewStore())
	notifier := push.NewNotifier(&cfg.Push)

	userRepo := user.NewRepository(usersDB)
	userSvc := user.NewService(userRepo)
	clientRepo := client.NewRepository(usersDB)
	levelRepo := level.NewRepository(levelsDB)

	app := fiber.New(fiber.Config{
		ServerHeader: "StageTribe",
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(requestid.New())
	if len(cfg.API.CORSAllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.API.CORSAllowedOrigins, ","),
			AllowCredentials: true,
		}))
	}
	app.Use(CountConnections(stats))

	SetupRoutes(app, &RouteDeps{
		Config:   cfg,
		Users:    userSvc,
		Clients:  clientRepo,
		Levels:   levelRepo,
		Sessions: sessions,
		Provider: provider,
		Notifier: notifier,
		Stats:    stats,
		Started:  time.Now(),
	})

	addr := cfg.Server.Address()
	slog.Info("Server starting", "address", addr)
	return app.Listen(addr)
}
