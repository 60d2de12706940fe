package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/service"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

type historyService interface {
	List(ctx context.Context, q dto.HistoryQuery) ([]models.ContentItem, models.Pagination, error)
}

type historyExportService interface {
	CreateJob(ctx context.Context, actor models.Identity, req dto.HistoryExportRequest) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, actor models.Identity, id string) (*models.ExportJob, error)
	ResolveDownload(ctx context.Context, token string) (*service.HistoryDownload, error)
}

// HistoryHandler exposes moderation history and its exports.
type HistoryHandler struct {
	history historyService
	exports historyExportService
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(history historyService, exports historyExportService) *HistoryHandler {
	return &HistoryHandler{history: history, exports: exports}
}

// List godoc
// @Summary Moderation history
// @Tags History
// @Produce json
// @Param search query string false "Author, text, moderator or notes"
// @Param dateRange query string false "all, today, week or month"
// @Param contentType query string false "all, image, video or comment"
// @Param decision query string false "all, approved or rejected"
// @Param platform query string false "Platform"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid history query"))
		return
	}
	items, pagination, err := h.history.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, &pagination)
}

// CreateExport godoc
// @Summary Queue a history export
// @Tags History
// @Accept json
// @Produce json
// @Param payload body dto.HistoryExportRequest true "Format and filters"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /history/exports [post]
func (h *HistoryHandler) CreateExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "history exports are disabled"))
		return
	}
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	var req dto.HistoryExportRequest
	if !bindJSON(c, &req, "invalid export payload") {
		return
	}
	job, err := h.exports.CreateJob(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// ExportStatus godoc
// @Summary History export status
// @Tags History
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /history/exports/{id} [get]
func (h *HistoryHandler) ExportStatus(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	job, err := h.exports.GetStatus(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a finished export
// @Tags History
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /history/exports/download/{token} [get]
func (h *HistoryHandler) Download(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "download token required"))
		return
	}
	download, err := h.exports.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType(), download.File, nil)
}
