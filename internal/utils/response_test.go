package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSuccessResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"username": "alice"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if got["username"] != "alice" {
		t.Errorf("body = %s, want username alice", body)
	}
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/default", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrTypeStorage, "storage backend unavailable")
	})
	app.Get("/explicit", func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrTypeNotFound, "Level not found.", fiber.StatusNotFound)
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		wantMsg    string
	}{
		{"default status", "/default", fiber.StatusInternalServerError, ErrTypeStorage, "storage backend unavailable"},
		{"explicit status", "/explicit", fiber.StatusNotFound, ErrTypeNotFound, "Level not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() unexpected error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body, _ := io.ReadAll(resp.Body)
			var got struct {
				ErrorType string `json:"error_type"`
				Message   string `json:"message"`
			}
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("response not JSON: %v", err)
			}
			if got.ErrorType != tt.wantType || got.Message != tt.wantMsg {
				t.Errorf("body = %s, want (%q, %q)", body, tt.wantType, tt.wantMsg)
			}
		})
	}
}
