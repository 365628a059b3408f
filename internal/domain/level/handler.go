package level

import (
	"encoding/base64"
	"fmt"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/config"
	"github.com/stagetribe/stagetribe/internal/domain/session"
	"github.com/stagetribe/stagetribe/internal/domain/user"
	"github.com/stagetribe/stagetribe/internal/locales"
	"github.com/stagetribe/stagetribe/internal/push"
	"github.com/stagetribe/stagetribe/internal/storage"
	"github.com/stagetribe/stagetribe/internal/utils"
)

// Handler serves the stage endpoints and is the caller that exercises
// the storage provider.
type Handler struct {
	levels   Repository
	users    user.Service
	provider storage.Provider
	notifier *push.Notifier
	api      *config.APIConfig
}

// NewHandler creates a level handler
func NewHandler(levels Repository, users user.Service, provider storage.Provider, notifier *push.Notifier, api *config.APIConfig) *Handler {
	return &Handler{
		levels:   levels,
		users:    users,
		provider: provider,
		notifier: notifier,
		api:      api,
	}
}

// Register mounts the stage routes. Upload and delete require a live
// session; downloads are public.
func (h *Handler) Register(router fiber.Router, auth fiber.Handler) {
	group := router.Group("/stage")
	group.Post("/upload", auth, h.Upload)
	group.Get("/:level_id/file", h.File)
	group.Post("/:level_id/delete", auth, h.Delete)
}

// Upload stores a new stage through the active storage provider
func (h *Handler) Upload(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	locale := locales.Get(sess.Locale)

	name := c.FormValue("name")
	payload := c.FormValue("swe")
	if name == "" || len(payload) < storage.ChecksumLength {
		return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "Invalid stage upload.", fiber.StatusBadRequest)
	}

	author, err := h.users.GetByID(sess.UserID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up account.")
	}
	if author == nil {
		return utils.ErrorResponse(c, utils.ErrTypePermissionDenied, "Permission denied.", fiber.StatusUnauthorized)
	}

	limit := h.api.UploadLimit
	if author.IsBooster {
		limit += h.api.BoosterExtraLimit
	}
	if limit > 0 && author.Uploads >= limit {
		return utils.ErrorResponse(c, utils.ErrTypeAccount, locale.UploadLimitReached, fiber.StatusForbidden)
	}

	levelID := GenerateID()

	if err := h.provider.Upload(c.UserContext(), payload, levelID); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Upload failed.")
	}

	if err := h.levels.Create(&Level{
		Name:     name,
		LevelID:  levelID,
		AuthorID: author.ID,
		NonLatin: hasNonLatin(name),
		Date:     time.Now(),
	}); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Upload failed.")
	}

	if err := h.users.IncrementUploads(author); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Upload failed.")
	}

	h.notifier.EngineBot(c.UserContext(), map[string]any{
		"type":     "new_arrival",
		"level_id": levelID,
		"name":     name,
		"author":   author.Username,
	})
	h.notifier.Discord(c.UserContext(), fmt.Sprintf(
		"🆕 **%s** subió un nuevo nivel: **%s** (`%s`)",
		author.Username, name, levelID,
	))

	return utils.SuccessResponse(c, fiber.Map{
		"success": "Upload completed.",
		"id":      levelID,
		"type":    "upload",
	})
}

// File serves the decoded stage file for download
func (h *Handler) File(c *fiber.Ctx) error {
	levelID := c.Params("level_id")

	payload, err := h.provider.Dump(c.UserContext(), levelID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to fetch stage.")
	}
	if payload == "" {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "Level not found.", fiber.StatusNotFound)
	}

	body := payload[:len(payload)-storage.ChecksumLength]
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Stored stage is corrupted.")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.swe"`, levelID))
	return c.Send(data)
}

// Delete removes a stage. Only the author or a moderator may delete.
func (h *Handler) Delete(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	levelID := c.Params("level_id")

	l, err := h.levels.GetByLevelID(levelID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up stage.")
	}
	if l == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "Level not found.", fiber.StatusNotFound)
	}

	if l.AuthorID != sess.UserID {
		caller, err := h.users.GetByID(sess.UserID)
		if err != nil {
			return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up account.")
		}
		isMod := caller != nil && (caller.IsMod || caller.IsAdmin)
		if !isMod && sess.ClientType != session.ClientTypeEngineBot {
			return utils.ErrorResponse(c, utils.ErrTypePermissionDenied, "Permission denied.", fiber.StatusForbidden)
		}
	}

	if err := h.provider.Delete(c.UserContext(), levelID); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to delete stage.")
	}
	if err := h.levels.Delete(levelID); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to delete stage.")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success": "Deletion completed.",
		"id":      levelID,
		"type":    "delete",
	})
}

func hasNonLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
