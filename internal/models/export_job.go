package models

import "time"

// ExportFormat enumerates supported history export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// HistoryFilter narrows moderation history.
type HistoryFilter struct {
	Search      string `json:"search,omitempty" form:"search"`
	DateRange   string `json:"dateRange,omitempty" form:"dateRange" validate:"omitempty,oneof=all today week month"`
	ContentType string `json:"contentType,omitempty" form:"contentType" validate:"omitempty,oneof=all image video comment"`
	Decision    string `json:"decision,omitempty" form:"decision" validate:"omitempty,oneof=all approved rejected"`
	Platform    string `json:"platform,omitempty" form:"platform" validate:"omitempty,oneof=all facebook twitter instagram tiktok youtube"`
}

// ExportJob tracks one asynchronous history export.
type ExportJob struct {
	ID           string        `json:"id"`
	Format       ExportFormat  `json:"format"`
	Filter       HistoryFilter `json:"filter"`
	Status       ExportStatus  `json:"status"`
	Progress     int           `json:"progress"`
	RowCount     int           `json:"rowCount"`
	FilePath     string        `json:"-"`
	ResultURL    *string       `json:"resultUrl,omitempty"`
	ErrorMessage *string       `json:"errorMessage,omitempty"`
	CreatedBy    string        `json:"createdBy"`
	CreatedAt    time.Time     `json:"createdAt"`
	FinishedAt   *time.Time    `json:"finishedAt,omitempty"`
}
