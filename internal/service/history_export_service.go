package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/jobs"
)

// HistoryExportJobType labels history export jobs on the worker queue.
const HistoryExportJobType = "history_export"

type exportJobStore interface {
	Create(ctx context.Context, job models.ExportJob) error
	Get(ctx context.Context, id string) (*models.ExportJob, error)
	Modify(ctx context.Context, id string, fn func(*models.ExportJob)) (*models.ExportJob, error)
	FinishedBefore(ctx context.Context, cutoff time.Time) []models.ExportJob
	Delete(ctx context.Context, id string)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type historyCollector interface {
	Collect(ctx context.Context, filter models.HistoryFilter) ([]models.ContentItem, error)
}

// HistoryExportConfig governs cleanup of finished exports.
type HistoryExportConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// HistoryDownload aggregates a resolved download.
type HistoryDownload struct {
	File      *os.File
	Filename  string
	Format    models.ExportFormat
	ExpiresAt time.Time
}

// ContentType reports the MIME type of the download.
func (d *HistoryDownload) ContentType() string {
	if d.Format == models.ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// HistoryExportService manages the lifecycle of history export jobs.
type HistoryExportService struct {
	repo      exportJobStore
	queue     jobDispatcher
	exporter  *ExportService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       HistoryExportConfig
	now       func() time.Time
}

// NewHistoryExportService constructs a HistoryExportService.
func NewHistoryExportService(repo exportJobStore, queue jobDispatcher, exporter *ExportService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg HistoryExportConfig) *HistoryExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &HistoryExportService{
		repo:      repo,
		queue:     queue,
		exporter:  exporter,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateJob validates the request, stores a queued job and hands it to the worker queue.
func (s *HistoryExportService) CreateJob(ctx context.Context, actor models.Identity, req dto.HistoryExportRequest) (*dto.ExportJobResponse, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	if err := s.validator.Struct(req.Filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid history filters")
	}

	job := models.ExportJob{
		ID:        uuid.NewString(),
		Format:    models.ExportFormat(req.Format),
		Filter:    normalizeHistoryFilter(req.Filter),
		Status:    models.ExportStatusQueued,
		CreatedBy: actor.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}
	s.metrics.RecordExportJob(string(models.ExportStatusQueued))

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: HistoryExportJobType}); err != nil {
		msg := "failed to enqueue job"
		finished := s.now().UTC()
		_, _ = s.repo.Modify(ctx, job.ID, func(j *models.ExportJob) {
			j.Status = models.ExportStatusFailed
			j.Progress = 100
			j.ErrorMessage = &msg
			j.FinishedAt = &finished
		})
		s.metrics.RecordExportJob(string(models.ExportStatusFailed))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}

	s.logger.Info("history export queued", zap.String("job_id", job.ID), zap.String("format", req.Format), zap.String("actor_id", actor.ID))
	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// GetStatus returns the job. Moderators only see their own exports.
func (s *HistoryExportService) GetStatus(ctx context.Context, actor models.Identity, id string) (*models.ExportJob, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapExportError(err)
	}
	if actor.Role != models.RoleAdmin && job.CreatedBy != actor.ID {
		return nil, appErrors.ErrForbidden
	}
	return job, nil
}

// ResolveDownload validates token and opens the stored export file.
func (s *HistoryExportService) ResolveDownload(ctx context.Context, token string) (*HistoryDownload, error) {
	ticket, err := s.exporter.Verify(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.repo.Get(ctx, ticket.JobID)
	if err != nil {
		return nil, mapExportError(err)
	}
	if job.ResultURL == nil || !strings.HasSuffix(*job.ResultURL, token) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	if job.Status != models.ExportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not ready")
	}
	file, err := s.exporter.Open(ticket.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &HistoryDownload{
		File:      file,
		Filename:  filepath.Base(ticket.Path),
		Format:    job.Format,
		ExpiresAt: ticket.ExpiresAt,
	}, nil
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *HistoryExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired(ctx)
			}
		}
	}()
}

// CleanupExpired removes finished jobs older than the result TTL and their files.
func (s *HistoryExportService) CleanupExpired(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.ResultTTL)
	expired := s.repo.FinishedBefore(ctx, cutoff)
	for _, job := range expired {
		if job.FilePath != "" {
			if err := s.exporter.Delete(job.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Sugar().Warnw("cleanup delete failed", "job_id", job.ID, "error", err)
			}
		}
		s.repo.Delete(ctx, job.ID)
	}
	if _, err := s.exporter.Cleanup(s.cfg.ResultTTL); err != nil {
		s.logger.Sugar().Warnw("filesystem cleanup failed", "error", err)
	}
	return len(expired)
}

// HistoryExportWorker bridges queue jobs to the ExportService.
type HistoryExportWorker struct {
	repo     exportJobStore
	history  historyCollector
	exporter *ExportService
	notifier Notifier
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewHistoryExportWorker constructs a worker.
func NewHistoryExportWorker(repo exportJobStore, history historyCollector, exporter *ExportService, notifier Notifier, metrics *MetricsService, logger *zap.Logger) *HistoryExportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryExportWorker{
		repo:     repo,
		history:  history,
		exporter: exporter,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle processes a queue job. Errors are retried by the queue.
func (w *HistoryExportWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, err := w.repo.Modify(ctx, job.ID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusProcessing
		j.Progress = 10
	})
	if err != nil {
		return err
	}

	items, err := w.history.Collect(ctx, record.Filter)
	if err != nil {
		w.requeue(ctx, job.ID, err)
		return err
	}
	if _, err := w.repo.Modify(ctx, job.ID, func(j *models.ExportJob) { j.Progress = 50 }); err != nil {
		return err
	}

	result, err := w.exporter.Generate(ctx, *record, items)
	if err != nil {
		w.requeue(ctx, job.ID, err)
		return err
	}

	finished := w.now().UTC()
	url := result.URL
	updated, err := w.repo.Modify(ctx, job.ID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFinished
		j.Progress = 100
		j.RowCount = len(items)
		j.FilePath = result.RelativePath
		j.ResultURL = &url
		j.ErrorMessage = nil
		j.FinishedAt = &finished
	})
	if err != nil {
		w.logger.Sugar().Warnw("failed to mark export finished", "job_id", job.ID, "error", err)
		return err
	}

	w.metrics.RecordExportJob(string(models.ExportStatusFinished))
	w.logger.Info("history export finished", zap.String("job_id", job.ID), zap.Int("rows", updated.RowCount))
	if w.notifier != nil {
		w.notifier.Notify(ctx, models.Notification{
			Kind:        models.KindExportReady,
			Title:       "Export ready",
			Description: fmt.Sprintf("Your %s export with %d records is ready to download.", strings.ToUpper(string(updated.Format)), updated.RowCount),
		})
	}
	return nil
}

// MarkFailed records a job that exhausted its retries.
func (w *HistoryExportWorker) MarkFailed(ctx context.Context, job jobs.Job, cause error) {
	msg := "export failed"
	if cause != nil {
		msg = cause.Error()
	}
	finished := w.now().UTC()
	if _, err := w.repo.Modify(ctx, job.ID, func(j *models.ExportJob) {
		j.Status = models.ExportStatusFailed
		j.Progress = 100
		j.ErrorMessage = &msg
		j.FinishedAt = &finished
	}); err != nil {
		w.logger.Sugar().Warnw("failed to mark export failed", "job_id", job.ID, "error", err)
		return
	}

	w.metrics.RecordExportJob(string(models.ExportStatusFailed))
	if w.notifier != nil {
		w.notifier.Notify(ctx, models.Notification{
			Kind:        models.KindExportFailed,
			Title:       "Export failed",
			Description: "The history export could not be generated.",
			Variant:     models.VariantDestructive,
		})
	}
}

func (w *HistoryExportWorker) requeue(ctx context.Context, id string, cause error) {
	msg := cause.Error()
	if _, err := w.repo.Modify(ctx, id, func(j *models.ExportJob) {
		j.Status = models.ExportStatusQueued
		j.Progress = 0
		j.ErrorMessage = &msg
	}); err != nil {
		w.logger.Sugar().Warnw("failed to mark export queued", "job_id", id, "error", err)
	}
}

func mapExportError(err error) error {
	if errors.Is(err, repository.ErrExportNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
}
