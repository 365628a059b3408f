package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/cache"
	"github.com/stagetribe/stagetribe/internal/utils"
)

// validAgents are the user-agent fragments of known game client builds
var validAgents = []string{"GameMaker", "Dalvik", "Android", "EngineBot", "PlayStation", "libcurl-agent"}

// VerifyUserAgent rejects requests that do not come from a known game
// client. When verification is disabled only an empty user agent is
// rejected.
func VerifyUserAgent(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		agent := c.Get(fiber.HeaderUserAgent)
		if agent == "" {
			return utils.ErrorResponse(c, utils.ErrTypeIllegalClient, "Illegal client.", fiber.StatusForbidden)
		}
		if !enabled {
			return c.Next()
		}
		for _, valid := range validAgents {
			if strings.Contains(agent, valid) {
				return c.Next()
			}
		}
		return utils.ErrorResponse(c, utils.ErrTypeIllegalClient, "Illegal client.", fiber.StatusForbidden)
	}
}

// CountConnections records each handled request in the stats counter
func CountConnections(stats *cache.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if stats != nil {
			stats.Hit(c.UserContext())
		}
		return c.Next()
	}
}
