package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/pkg/export"
	"github.com/noah-isme/contentguard-api/pkg/storage"
)

const historyTimeLayout = "2006-01-02 15:04"

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (*os.File, error)
	Delete(relPath string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService renders moderation history and persists the files.
type ExportService struct {
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// package defaults.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{storage: store, csv: csv, pdf: pdf, signer: signer, logger: logger, cfg: cfg, now: time.Now}
}

// HistoryDataset lays out history items as export rows.
func HistoryDataset(items []models.ContentItem) export.Dataset {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		row := map[string]string{
			"id":        item.ID,
			"type":      string(item.Type),
			"platform":  string(item.Platform),
			"author":    item.User.Name,
			"content":   contentPreview(item),
			"decision":  string(item.Status),
			"submitted": item.Timestamp.UTC().Format(historyTimeLayout),
		}
		if item.Category != nil {
			row["category"] = item.Category.Label()
		}
		if item.ModeratedBy != nil {
			row["moderator"] = item.ModeratedBy.Name
		}
		if item.ModeratedAt != nil {
			row["moderated"] = item.ModeratedAt.UTC().Format(historyTimeLayout)
		}
		if item.Notes != nil {
			row["notes"] = *item.Notes
		}
		rows = append(rows, row)
	}
	return export.Dataset{
		Columns: []export.Column{
			{Key: "id", Title: "ID", Width: 0.6},
			{Key: "type", Title: "Type", Width: 0.8},
			{Key: "platform", Title: "Platform", Width: 1},
			{Key: "author", Title: "Author", Width: 1.3},
			{Key: "content", Title: "Content", Width: 2.5},
			{Key: "decision", Title: "Decision", Width: 1},
			{Key: "category", Title: "Category", Width: 1.2},
			{Key: "moderator", Title: "Moderator", Width: 1.2},
			{Key: "submitted", Title: "Submitted", Width: 1.3},
			{Key: "moderated", Title: "Moderated", Width: 1.3},
			{Key: "notes", Title: "Notes", Width: 2},
		},
		Rows: rows,
	}
}

func contentPreview(item models.ContentItem) string {
	if item.Text != nil {
		return *item.Text
	}
	if item.URL != nil {
		return *item.URL
	}
	return ""
}

// Render encodes items in the requested format.
func (s *ExportService) Render(format models.ExportFormat, items []models.ContentItem) ([]byte, error) {
	dataset := HistoryDataset(items)
	switch format {
	case models.ExportFormatCSV:
		return s.csv.Render(dataset)
	case models.ExportFormatPDF:
		return s.pdf.Render(dataset, "Moderation History")
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// Generate renders items for job, stores the file and signs a download URL.
func (s *ExportService) Generate(_ context.Context, job models.ExportJob, items []models.ContentItem) (*ExportResult, error) {
	payload, err := s.Render(job.Format, items)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("history_%s_%s.%s", job.ID, s.now().UTC().Format("20060102_150405"), job.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, ticket, err := s.signer.Sign(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/history/exports/download/%s", prefix, token),
		ExpiresAt:    ticket.ExpiresAt,
	}, nil
}

// Verify validates a download token.
func (s *ExportService) Verify(token string) (storage.Ticket, error) {
	return s.signer.Verify(token)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, defaulting to the configured result TTL.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// ResultTTL reports how long finished exports are kept.
func (s *ExportService) ResultTTL() time.Duration {
	return s.cfg.ResultTTL
}
