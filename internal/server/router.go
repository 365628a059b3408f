package server

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/cache"
	"github.com/stagetribe/stagetribe/internal/config"
	"github.com/stagetribe/stagetribe/internal/domain/client"
	"github.com/stagetribe/stagetribe/internal/domain/level"
	"github.com/stagetribe/stagetribe/internal/domain/session"
	"github.com/stagetribe/stagetribe/internal/domain/user"
	"github.com/stagetribe/stagetribe/internal/push"
	"github.com/stagetribe/stagetribe/internal/storage"
	"github.com/stagetribe/stagetribe/internal/utils"
)

// RouteDeps carries everything the route tree needs
type RouteDeps struct {
	Config   *config.Config
	Users    user.Service
	Clients  client.Repository
	Levels   level.Repository
	Sessions *session.Service
	Provider storage.Provider
	Notifier *push.Notifier
	Stats    *cache.Stats
	Started  time.Time
}

// SetupRoutes sets up the routes for the application
func SetupRoutes(app *fiber.App, deps *RouteDeps) {
	agentCheck := VerifyUserAgent(deps.Config.API.VerifyUserAgent)
	auth := session.Middleware(deps.Sessions)

	userHandler := user.NewHandler(deps.Users, deps.Clients, deps.Sessions, deps.Notifier, deps.Config)
	clientHandler := client.NewHandler(deps.Clients, &deps.Config.API)
	levelHandler := level.NewHandler(deps.Levels, deps.Users, deps.Provider, deps.Notifier, &deps.Config.API)

	api := app.Group("/", agentCheck)
	userHandler.Register(api)
	clientHandler.Register(api)
	levelHandler.Register(api, auth)

	app.Get("/server_stats", serverStats(deps))

	// Fallback for unmatched routes, in the platform wire format
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, utils.ErrTypeRouteNotFound, "Route not found.", fiber.StatusNotFound)
	})
}

func serverStats(deps *RouteDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerCount, err := deps.Users.PlayerCount()
		if err != nil {
			return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to gather stats.")
		}
		levelCount, err := deps.Levels.Count()
		if err != nil {
			return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to gather stats.")
		}

		var perMinute int64
		if deps.Stats != nil {
			perMinute = deps.Stats.ConnectionsPerMinute(c.UserContext())
		}

		return utils.SuccessResponse(c, fiber.Map{
			"os":                    runtime.GOOS + " " + runtime.GOARCH,
			"go":                    runtime.Version(),
			"player_count":          playerCount,
			"level_count":           levelCount,
			"uptime":                int64(time.Since(deps.Started).Seconds()),
			"connection_per_minute": perMinute,
		})
	}
}
