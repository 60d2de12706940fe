package dto

import "github.com/noah-isme/contentguard-api/internal/models"

// HistoryQuery mirrors the moderation history listing filters.
type HistoryQuery struct {
	models.HistoryFilter
	Page int `form:"page" json:"page"`
}

// HistoryExportRequest asks for an asynchronous export of the filtered history.
type HistoryExportRequest struct {
	Format string               `json:"format" validate:"required,oneof=csv pdf"`
	Filter models.HistoryFilter `json:"filter"`
}

// ExportJobResponse is returned when an export is queued.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}
