package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/utils"
)

// ContextKey is the key used to store the session in Fiber context
const ContextKey = "session"

// Middleware resolves the caller's identity from the auth_code form
// field. Requests without a resolvable session are rejected before the
// handler runs.
func Middleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCode := c.FormValue("auth_code")
		if authCode == "" {
			return utils.ErrorResponse(c, utils.ErrTypePermissionDenied, "Permission denied.", fiber.StatusUnauthorized)
		}

		sess := svc.Lookup(authCode)
		if sess == nil {
			return utils.ErrorResponse(c, utils.ErrTypePermissionDenied, "Session expired.", fiber.StatusUnauthorized)
		}

		c.Locals(ContextKey, sess)
		return c.Next()
	}
}

// FromContext extracts the session from Fiber context
func FromContext(c *fiber.Ctx) *Session {
	sess, ok := c.Locals(ContextKey).(*Session)
	if !ok {
		return nil
	}
	return sess
}
