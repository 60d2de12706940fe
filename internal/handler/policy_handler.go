package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

type policyService interface {
	List(ctx context.Context, q dto.PolicyQuery) []models.Policy
	Create(ctx context.Context, actor models.Identity, req dto.PolicyRequest) (*models.Policy, error)
	Update(ctx context.Context, actor models.Identity, id string, req dto.PolicyRequest) (*models.Policy, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
}

// PolicyHandler exposes moderation policy management.
type PolicyHandler struct {
	service policyService
}

// NewPolicyHandler constructs the handler.
func NewPolicyHandler(svc policyService) *PolicyHandler {
	return &PolicyHandler{service: svc}
}

// List godoc
// @Summary List policies
// @Tags Policies
// @Produce json
// @Param search query string false "Name or description"
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /policies [get]
func (h *PolicyHandler) List(c *gin.Context) {
	var q dto.PolicyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid policy query"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context(), q), nil)
}

// Create godoc
// @Summary Create a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param payload body dto.PolicyRequest true "Policy"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /policies [post]
func (h *PolicyHandler) Create(c *gin.Context) {
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	var req dto.PolicyRequest
	if !bindJSON(c, &req, "invalid policy payload") {
		return
	}
	policy, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, policy)
}

// Update godoc
// @Summary Update a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param id path string true "Policy ID"
// @Param payload body dto.PolicyRequest true "Policy"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /policies/{id} [put]
func (h *PolicyHandler) Update(c *gin.Context) {
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	var req dto.PolicyRequest
	if !bindJSON(c, &req, "invalid policy payload") {
		return
	}
	policy, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, policy, nil)
}

// Delete godoc
// @Summary Delete a policy
// @Tags Policies
// @Param id path string true "Policy ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /policies/{id} [delete]
func (h *PolicyHandler) Delete(c *gin.Context) {
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
