package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

type apiKeyService interface {
	List(ctx context.Context) dto.APIKeyList
	Create(ctx context.Context, req dto.CreateAPIKeyRequest) (*dto.APIKeyView, error)
	Toggle(ctx context.Context, id string) (*dto.APIKeyView, error)
	Regenerate(ctx context.Context, id string) (*dto.APIKeyView, error)
}

// APIKeyHandler exposes platform API key configuration.
type APIKeyHandler struct {
	service apiKeyService
}

// NewAPIKeyHandler constructs the handler.
func NewAPIKeyHandler(svc apiKeyService) *APIKeyHandler {
	return &APIKeyHandler{service: svc}
}

// List godoc
// @Summary List API keys with usage totals
// @Tags API Keys
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api-keys [get]
func (h *APIKeyHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Create godoc
// @Summary Issue a new API key
// @Tags API Keys
// @Accept json
// @Produce json
// @Param payload body dto.CreateAPIKeyRequest true "Key"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api-keys [post]
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req dto.CreateAPIKeyRequest
	if !bindJSON(c, &req, "invalid api key payload") {
		return
	}
	view, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Toggle godoc
// @Summary Activate or deactivate a key
// @Tags API Keys
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} response.Envelope
// @Router /api-keys/{id}/toggle [post]
func (h *APIKeyHandler) Toggle(c *gin.Context) {
	view, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Regenerate godoc
// @Summary Replace a key's secret
// @Tags API Keys
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} response.Envelope
// @Router /api-keys/{id}/regenerate [post]
func (h *APIKeyHandler) Regenerate(c *gin.Context) {
	view, err := h.service.Regenerate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
