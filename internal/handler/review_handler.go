package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/queue"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

type reviewService interface {
	View(ctx context.Context) dto.ReviewResponse
	SetFilters(ctx context.Context, req dto.ReviewFiltersRequest) (dto.ReviewResponse, error)
	SetMode(ctx context.Context, mode queue.Mode) (dto.ReviewResponse, error)
	Review(ctx context.Context, id string) (dto.ReviewResponse, error)
	Next(ctx context.Context) dto.ReviewResponse
	Previous(ctx context.Context) dto.ReviewResponse
	Approve(ctx context.Context, actor models.Identity, id, notes string) (dto.ReviewResponse, error)
	Reject(ctx context.Context, actor models.Identity, id string, category models.Category, notes string) (dto.ReviewResponse, error)
}

// ReviewHandler exposes the moderation queue.
type ReviewHandler struct {
	service reviewService
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(svc reviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// View godoc
// @Summary Current queue view
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /review [get]
func (h *ReviewHandler) View(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.View(c.Request.Context()), nil)
}

// SetFilters godoc
// @Summary Change queue filters and sort order
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body dto.ReviewFiltersRequest true "Filters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /review/filters [put]
func (h *ReviewHandler) SetFilters(c *gin.Context) {
	var req dto.ReviewFiltersRequest
	if !bindJSON(c, &req, "invalid filters payload") {
		return
	}
	view, err := h.service.SetFilters(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SetMode godoc
// @Summary Switch between list and single review
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body dto.ReviewModeRequest true "Mode"
// @Success 200 {object} response.Envelope
// @Router /review/mode [put]
func (h *ReviewHandler) SetMode(c *gin.Context) {
	var req dto.ReviewModeRequest
	if !bindJSON(c, &req, "invalid mode payload") {
		return
	}
	view, err := h.service.SetMode(c.Request.Context(), queue.Mode(req.Mode))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Review godoc
// @Summary Open an item in single review
// @Description Unknown ids leave the view unchanged.
// @Tags Review
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} response.Envelope
// @Router /review/items/{id}/review [post]
func (h *ReviewHandler) Review(c *gin.Context) {
	view, err := h.service.Review(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, appErrors.ErrItemNotFound) {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Next godoc
// @Summary Advance to the next item
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /review/next [post]
func (h *ReviewHandler) Next(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Next(c.Request.Context()), nil)
}

// Previous godoc
// @Summary Step back to the previous item
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /review/previous [post]
func (h *ReviewHandler) Previous(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Previous(c.Request.Context()), nil)
}

// Approve godoc
// @Summary Approve a pending item
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Content ID"
// @Param payload body dto.ApproveRequest false "Notes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /review/items/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, "invalid approve payload") {
		return
	}
	view, err := h.service.Approve(c.Request.Context(), actor, c.Param("id"), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Reject godoc
// @Summary Reject a pending item with a violation category
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Content ID"
// @Param payload body dto.RejectRequest true "Category and notes"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /review/items/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if !bindJSON(c, &req, "invalid reject payload") {
		return
	}
	view, err := h.service.Reject(c.Request.Context(), actor, c.Param("id"), models.Category(req.Category), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
