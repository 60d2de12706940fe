package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

// ContentStore is the content repository surface used by the moderation services.
type ContentStore interface {
	All(ctx context.Context) []models.ContentItem
	FindByID(ctx context.Context, id string) (*models.ContentItem, error)
	Update(ctx context.Context, id string, fn func(models.ContentItem) (models.ContentItem, error)) (*models.ContentItem, error)
}

// Decision is a single approve or reject request.
type Decision struct {
	ItemID   string
	Status   models.ModerationStatus
	Category models.Category
	Notes    string
}

// DecisionService moves pending content to approved or rejected.
type DecisionService struct {
	repo     ContentStore
	notifier Notifier
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewDecisionService constructs a DecisionService.
func NewDecisionService(repo ContentStore, notifier Notifier, metrics *MetricsService, logger *zap.Logger) *DecisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionService{repo: repo, notifier: notifier, metrics: metrics, logger: logger, now: time.Now}
}

// Approve records an approval and announces it.
func (s *DecisionService) Approve(ctx context.Context, actor models.Identity, id, notes string) (*models.ContentItem, error) {
	item, err := s.Record(ctx, actor, Decision{ItemID: id, Status: models.StatusApproved, Notes: notes})
	s.Announce(ctx, item, err)
	return item, err
}

// Reject records a rejection under category and announces it.
func (s *DecisionService) Reject(ctx context.Context, actor models.Identity, id string, category models.Category, notes string) (*models.ContentItem, error) {
	item, err := s.Record(ctx, actor, Decision{ItemID: id, Status: models.StatusRejected, Category: category, Notes: notes})
	s.Announce(ctx, item, err)
	return item, err
}

// Record commits d without emitting notifications. The pending check and the
// write happen atomically in the repository.
func (s *DecisionService) Record(ctx context.Context, actor models.Identity, d Decision) (*models.ContentItem, error) {
	switch d.Status {
	case models.StatusApproved:
	case models.StatusRejected:
		if d.Category == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "category is required")
		}
		if !d.Category.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", d.Category))
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported decision %q", d.Status))
	}

	moderatedAt := s.now().UTC()
	stamp := actor.Moderator()
	notes := d.Notes

	item, err := s.repo.Update(ctx, d.ItemID, func(current models.ContentItem) (models.ContentItem, error) {
		if !current.IsPending() {
			return current, appErrors.Clone(appErrors.ErrNotPending, fmt.Sprintf("content %s is already %s", current.ID, current.Status))
		}
		current.Status = d.Status
		current.ModeratedBy = &stamp
		current.ModeratedAt = &moderatedAt
		current.Notes = &notes
		if d.Status == models.StatusRejected {
			category := d.Category
			current.Category = &category
		}
		return current, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			err = appErrors.Clone(appErrors.ErrItemNotFound, fmt.Sprintf("content %s not found", d.ItemID))
		}
		s.metrics.RecordDecision(appErrors.FromError(err).Code)
		s.logger.Warn("decision refused", zap.String("content_id", d.ItemID), zap.String("decision", string(d.Status)), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordDecision(string(item.Status))
	s.logger.Info("content moderated",
		zap.String("content_id", item.ID),
		zap.String("decision", string(item.Status)),
		zap.String("moderator_id", actor.ID),
	)
	return item, nil
}

// Announce emits the notification for the outcome of Record. Validation
// failures are reported inline and produce no notification.
func (s *DecisionService) Announce(ctx context.Context, item *models.ContentItem, err error) {
	if s.notifier == nil {
		return
	}
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrValidation.Code) {
			return
		}
		s.notifier.Notify(ctx, models.Notification{
			Kind:        models.KindDecisionFailed,
			Title:       "Decision failed",
			Description: appErrors.FromError(err).Message,
			Variant:     models.VariantDestructive,
		})
		return
	}
	if item == nil {
		return
	}

	switch item.Status {
	case models.StatusApproved:
		s.notifier.Notify(ctx, models.Notification{
			Kind:        models.KindApproved,
			Title:       "Content Approved",
			Description: "The content has been approved successfully.",
		})
	case models.StatusRejected:
		label := ""
		if item.Category != nil {
			label = item.Category.Label()
		}
		s.notifier.Notify(ctx, models.Notification{
			Kind:        models.KindRejected,
			Title:       "Content Rejected",
			Description: fmt.Sprintf("The content has been rejected as %q.", label),
		})
	}
}
