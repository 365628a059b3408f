package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Error types carried in the wire-level "error_type" field. Game clients
// branch on these codes, not on HTTP status.
const (
	ErrTypeRouteNotFound    = "001"
	ErrTypeIllegalClient    = "002"
	ErrTypeInvalidAPIKey    = "003"
	ErrTypeNotFound         = "004"
	ErrTypeAccount          = "005"
	ErrTypePermissionDenied = "006"
	ErrTypeBadRequest       = "007"
	ErrTypeConflict         = "008"
	ErrTypeStorage          = "009"
)

// SuccessResponse sends a JSON payload with 200 OK
func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// ErrorResponse sends an error JSON response in the platform wire format.
// If an explicit HTTP status code is provided it is used; otherwise
// 500 Internal Server Error is sent.
func ErrorResponse(c *fiber.Ctx, errorType, message string, code ...int) error {
	statusCode := fiber.StatusInternalServerError
	if len(code) > 0 {
		statusCode = code[0]
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"error_type": errorType,
		"message":    message,
	})
}
