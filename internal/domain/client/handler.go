package client

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagetribe/stagetribe/internal/config"
	"github.com/stagetribe/stagetribe/internal/domain/session"
	"github.com/stagetribe/stagetribe/internal/locales"
	"github.com/stagetribe/stagetribe/internal/utils"
)

// Handler serves the admin client-management endpoints
type Handler struct {
	repo Repository
	api  *config.APIConfig
}

// NewHandler creates a client handler
func NewHandler(repo Repository, api *config.APIConfig) *Handler {
	return &Handler{repo: repo, api: api}
}

// Register mounts the client routes
func (h *Handler) Register(router fiber.Router) {
	group := router.Group("/client")
	group.Post("/new", h.New)
	group.Post("/list", h.List)
	group.Post("/:token/revoke", h.Revoke)
	group.Post("/:token/delete", h.Delete)
}

type clientMessage struct {
	Success    string `json:"success,omitempty"`
	Token      string `json:"token"`
	ClientType string `json:"client_type,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Mobile     bool   `json:"mobile"`
	Proxied    bool   `json:"proxied"`
}

// New creates a new API client
func (h *Handler) New(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	token := c.FormValue("token")
	clientType, err := session.ParseClientType(c.FormValue("client_type"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "Invalid client type.", fiber.StatusBadRequest)
	}

	locale := c.FormValue("locale")
	if !locales.Exists(locale) {
		return utils.ErrorResponse(c, utils.ErrTypeBadRequest, "Invalid locale.", fiber.StatusBadRequest)
	}

	mobile := c.FormValue("mobile") == "true"
	proxied := c.FormValue("proxied") == "true"

	if err := h.repo.Create(&Client{
		Token:   token,
		Type:    int(clientType),
		Locale:  locale,
		Mobile:  mobile,
		Proxied: proxied,
		Valid:   true,
	}); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeConflict, "Failed to create client.", fiber.StatusConflict)
	}

	return utils.SuccessResponse(c, clientMessage{
		Success:    "Successfully created client.",
		Token:      token,
		ClientType: clientType.String(),
		Locale:     locale,
		Mobile:     mobile,
		Proxied:    proxied,
	})
}

// List returns all registered API clients
func (h *Handler) List(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	clients, err := h.repo.GetAll()
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to list clients.")
	}

	result := make([]clientMessage, 0, len(clients))
	for _, cl := range clients {
		result = append(result, clientMessage{
			Token:      cl.Token,
			ClientType: session.ClientType(cl.Type).String(),
			Locale:     cl.Locale,
			Mobile:     cl.Mobile,
			Proxied:    cl.Proxied,
		})
	}

	return utils.SuccessResponse(c, fiber.Map{"result": result})
}

// Revoke marks a client token invalid
func (h *Handler) Revoke(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	cl, err := h.repo.GetByToken(c.Params("token"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up client.")
	}
	if cl == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "Client not found.", fiber.StatusNotFound)
	}

	if err := h.repo.Revoke(cl); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to revoke client.")
	}

	return utils.SuccessResponse(c, clientMessage{
		Success: "Successfully revoked client.",
		Token:   cl.Token,
	})
}

// Delete removes a client entirely
func (h *Handler) Delete(c *fiber.Ctx) error {
	if !h.api.VerifyKey(c.FormValue("api_key")) {
		return utils.ErrorResponse(c, utils.ErrTypeInvalidAPIKey, "Invalid API Key.", fiber.StatusUnauthorized)
	}

	cl, err := h.repo.GetByToken(c.Params("token"))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to look up client.")
	}
	if cl == nil {
		return utils.ErrorResponse(c, utils.ErrTypeNotFound, "Client not found.", fiber.StatusNotFound)
	}

	if err := h.repo.Delete(cl); err != nil {
		return utils.ErrorResponse(c, utils.ErrTypeStorage, "Failed to delete client.")
	}

	return utils.SuccessResponse(c, clientMessage{
		Success: "Successfully deleted client.",
		Token:   cl.Token,
	})
}
