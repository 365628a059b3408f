package user

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/config"
	"github.com/stagetribe/stagetribe/internal/domain/client"
	"github.com/stagetribe/stagetribe/internal/domain/session"
	"github.com/stagetribe/stagetribe/internal/locales"
	"github.com/stagetribe/stagetribe/internal/push"
	"github.com/stagetribe/stagetribe/internal/utils"
)

// Handler serves the account endpoints
type Handler struct {
	users    Service
	clients  client.Repository
	sessions *session.Service
	notifier *push.Notifier
	api      *config.APIConfig
	discord  *config.DiscordPushConfig
}

// NewHandler creates a user handler
func NewHandler(users Service, clients client.Repository, sessions *session.Service, notifier *push.Notifier, cfg *config.Config) *Handler {
	return &Handler{
		users:    users,
		clients:  clients,
		sessions: sessions,
		notifier: notifier,
		api:      &cfg.API,
		discord:  &cfg.Push.Discord,
	}
}

// Register mounts the user routes
func (h *Handler) Register(router fiber.Router) {
	group := router.Group("/user")
	group.Post("/login", h.Login)
	group.Post("/register", h.RegisterAccount)
	group.Post("/:identifier/permission/:permission", h.SetPermission)
	group.Post("/:identifier/update_password", h.UpdatePassword)
	group.Post("/:identifier/info", h.Info)
}

type successMessage struct {
	Success  string `json:"success"`
	Username string `json:"username"`
	IMID     string `json:"im_id"`
	Type     string `json:"type"`
}

// Login authenticates an account through a registered client and opens
// a session. Engine-Bot clients authenticate as the synthetic moderator
// account without credentials.
func (h *Handler) Login(c *fiber.Ctx) error {
	alias := c.FormValue("alias")
	token := c.FormValue("token")
	password := c.FormValue("password")

	cl, err := h.clients.GetByToken(token)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up client.")
	}
	if cl == nil || !cl.Valid {
		return utils.ErrorResponse(c, utils.ErrTypeIllegalClient, "Illegal client.", fiber.StatusForbidden)
	}

	locale := locales.Get(cl.Locale)
	clientType := session.ClientType(cl.Type)

	var u *User
	if clientType == session.ClientTypeEngineBot {
		u = &User{Username: "EngineBot", IsValid: true, IsMod: true}
	} else {
		u, err = h.users.Login(alias, password)
		if err != nil {
			switch err {
			case ErrNotFound:
				return utils.ErrorResponse(c, utils.ErrTypeNotFound, locale.AccountNotFound, fiber.StatusNotFound)
			case ErrNotValid:
				return utils.ErrorResponse(c, utils.ErrTypeAccount, locale.AccountIsNotValid, fiber.StatusForbidden)
			case ErrBanned:
				return utils.ErrorResponse(c, utils.ErrTypeAccount, locale.AccountBanned, fiber.StatusForbidden)
			case ErrWrongPassword:
				return utils.ErrorResponse(c, utils.ErrTypeAccount, locale.AccountErrorPassword, fiber.StatusUnauthorized)
			default:
				return utils.ErrorResponse(c, utils.ErrTypeStorage, "Login failed.")
			}
		}
	}

	sess := h.sessions.Create(u.Username, u.ID, cl.Mobile, clientType, cl.Locale, cl.Proxied)

	if clientType == session.ClientTypeLegacy {
		return utils.SuccessResponse(c, LegacyLoginProfile{
			Alias:    alias,
			ID:       u.IMID,
			AuthCode: sess.ID,
			Goomba:   true,
			IP:       c.IP(),
		})
	}

	return utils.SuccessResponse(c, LoginProfile{
		Username: alias,
		Admin:    u.IsAdmin,
		Mod:      u.IsMod,
		Booster:  u.IsBooster,
		Goomba:   true,
		Alias:    alias,
		ID:       strconv.FormatInt(u.IMID, 10),
		Uploads:  u.Uploads,
		Mobile:   cl.Mobile,
		AuthCode: sess.ID,
	})
}

// RegisterAccount creates a new account from the registration bot
func (h *Handler) RegisterAccount(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	imID, err := strconv.ParseInt(c.FormValue("im_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "Invalid IM ID.", fiber.StatusBadRequest)
	}
	username := c.FormValue("username")
	passwordHash := c.FormValue("password_hash")

	u, err := h.users.Register(username, passwordHash, imID)
	if err != nil {
		switch err {
		case ErrIMIDExists:
			return utils.ErrorResponse(c, utils.ErrTypeConflict, "User ID already exists.", fiber.StatusConflict)
		case ErrUsernameExists:
			return utils.ErrorResponse(c, utils.ErrTypeConflict, "Username already exists.", fiber.StatusConflict)
		default:
			return utils.ErrorResponse(c, utils.ErrTypeStorage, "Registration failed.")
		}
	}

	return utils.SuccessResponse(c, successMessage{
		Success:  "Registration success.",
		Username: u.Username,
		IMID:     strconv.FormatInt(u.IMID, 10),
		Type:     "register",
	})
}

// SetPermission updates a permission flag on an account and announces
// role changes that matter to the community.
func (h *Handler) SetPermission(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	u, err := h.users.GetByIdentifier(c.Params("identifier"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up user.")
	}
	if u == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "User not found.", fiber.StatusNotFound)
	}

	permission := c.Params("permission")
	value := c.FormValue("value") == "true"

	keyPermissionChanged := (permission == "mod" && u.IsMod != value) ||
		(permission == "booster" && u.IsBooster != value)

	if err := h.users.SetPermission(u, permission, value); err != nil {
		if err == ErrBadPermission {
			return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "Permission does not exist.", fiber.StatusBadRequest)
		}
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to update permission.")
	}

	if keyPermissionChanged {
		h.notifier.EngineBot(c.UserContext(), map[string]any{
			"type":       "permission_change",
			"permission": permission,
			"username":   u.Username,
			"value":      value,
		})

		emoji := "🤗"
		if !value {
			emoji = "😥"
		}
		roleName := "Stage Moderator"
		if permission == "booster" {
			roleName = "Booster"
		}
		verb := "no"
		if value {
			verb = "sí"
		}
		h.notifier.Discord(c.UserContext(), fmt.Sprintf(
			"%s **%s** ahora %s tiene el rol **%s** en %s!!",
			emoji, u.Username, verb, roleName, h.discord.ServerName,
		))
	}

	return utils.SuccessResponse(c, fiber.Map{
		"success":    "Permission updated.",
		"type":       "update",
		"username":   u.Username,
		"im_id":      strconv.FormatInt(u.IMID, 10),
		"permission": permission,
		"value":      value,
	})
}

// UpdatePassword replaces an account's password digest
func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	u, err := h.users.GetByIdentifier(c.Params("identifier"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up user.")
	}
	if u == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "User not found.", fiber.StatusNotFound)
	}

	imID, err := strconv.ParseInt(c.FormValue("im_id"), 10, 64)
	if err != nil || u.IMID != imID {
		return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "User incorrect.", fiber.StatusBadRequest)
	}

	if err := h.users.UpdatePassword(u, c.FormValue("password_hash")); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to update password.")
	}

	return utils.SuccessResponse(c, successMessage{
		Success:  "Update password success.",
		Username: u.Username,
		IMID:     strconv.FormatInt(u.IMID, 10),
		Type:     "update",
	})
}

// Info returns the public view of an account
func (h *Handler) Info(c *fiber.Ctx) error {
	u, err := h.users.GetByIdentifier(c.Params("identifier"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up user.")
	}
	if u == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "User not found.", fiber.StatusNotFound)
	}

	return utils.SuccessResponse(c, fiber.Map{"result": u.ToInfo()})
}
