package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/queue"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

// DashboardInvalidator drops derived dashboard data after content changes.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// ReviewService owns the review controller of the operator session. Every
// transition, including decide, recompute and re-clamp, runs under one lock
// and notifications go out only after the new state is in place.
type ReviewService struct {
	mu        sync.Mutex
	ctrl      queue.Controller
	repo      ContentStore
	decisions *DecisionService
	notifier  Notifier
	dashboard DashboardInvalidator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewReviewService builds a list-mode review over the current repository snapshot.
func NewReviewService(repo ContentStore, decisions *DecisionService, notifier Notifier, dashboard DashboardInvalidator, metrics *MetricsService, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReviewService{
		ctrl:      queue.New(repo.All(context.Background())),
		repo:      repo,
		decisions: decisions,
		notifier:  notifier,
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
	s.metrics.SetQueueDepth(s.ctrl.Len())
	return s
}

// View re-reads the repository and renders the queue.
func (s *ReviewService) View(ctx context.Context) dto.ReviewResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.ctrl.Resync(s.repo.All(ctx)))
	return dto.ReviewResponse{View: s.ctrl.View()}
}

// SetFilters replaces the queue filters.
func (s *ReviewService) SetFilters(ctx context.Context, req dto.ReviewFiltersRequest) (dto.ReviewResponse, error) {
	filters, err := queue.Filters{
		ContentType: req.ContentType,
		Platform:    req.Platform,
		SortOrder:   queue.SortOrder(req.SortOrder),
	}.Normalize()
	if err != nil {
		return dto.ReviewResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.ctrl.Resync(s.repo.All(ctx)).SetFilters(filters))
	return dto.ReviewResponse{View: s.ctrl.View()}, nil
}

// SetMode toggles between list and single review.
func (s *ReviewService) SetMode(_ context.Context, mode queue.Mode) (dto.ReviewResponse, error) {
	if !mode.Valid() {
		return dto.ReviewResponse{}, appErrors.Clone(appErrors.ErrValidation, "mode must be list or single")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.ctrl.SetMode(mode))
	return dto.ReviewResponse{View: s.ctrl.View()}, nil
}

// Review opens id in single mode. When id is not in the filtered queue the
// state is unchanged and ErrItemNotFound is returned with the current view.
func (s *ReviewService) Review(_ context.Context, id string) (dto.ReviewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.ctrl.Review(id)
	if err != nil {
		if errors.Is(err, queue.ErrItemNotFound) {
			return dto.ReviewResponse{View: s.ctrl.View()}, appErrors.Clone(appErrors.ErrItemNotFound, "content "+id+" is not in the queue")
		}
		return dto.ReviewResponse{}, err
	}
	s.commit(next)
	return dto.ReviewResponse{View: s.ctrl.View()}, nil
}

// Next advances to the following item, wrapping to the first.
func (s *ReviewService) Next(ctx context.Context) dto.ReviewResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, signal := s.ctrl.Next()
	s.commit(next)
	return s.respond(ctx, signal)
}

// Previous steps back, wrapping to the last item.
func (s *ReviewService) Previous(_ context.Context) dto.ReviewResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.ctrl.Previous())
	return dto.ReviewResponse{View: s.ctrl.View()}
}

// Approve approves id and advances the review position.
func (s *ReviewService) Approve(ctx context.Context, actor models.Identity, id, notes string) (dto.ReviewResponse, error) {
	return s.decide(ctx, actor, Decision{ItemID: id, Status: models.StatusApproved, Notes: notes})
}

// Reject rejects id under category and advances the review position.
func (s *ReviewService) Reject(ctx context.Context, actor models.Identity, id string, category models.Category, notes string) (dto.ReviewResponse, error) {
	return s.decide(ctx, actor, Decision{ItemID: id, Status: models.StatusRejected, Category: category, Notes: notes})
}

func (s *ReviewService) decide(ctx context.Context, actor models.Identity, d Decision) (dto.ReviewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.decisions.Record(ctx, actor, d)
	if err != nil {
		s.decisions.Announce(ctx, nil, err)
		return dto.ReviewResponse{View: s.ctrl.View()}, err
	}

	next, signal := s.ctrl.AfterDecision(d.ItemID, s.repo.All(ctx))
	s.commit(next)
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx)
	}
	s.decisions.Announce(ctx, item, nil)
	return s.respond(ctx, signal), nil
}

func (s *ReviewService) commit(next queue.Controller) {
	s.ctrl = next
	s.metrics.SetQueueDepth(next.Len())
}

func (s *ReviewService) respond(ctx context.Context, signal queue.Signal) dto.ReviewResponse {
	resp := dto.ReviewResponse{View: s.ctrl.View()}
	if signal == queue.SignalEndOfQueue {
		resp.EndOfQueue = true
		s.metrics.RecordEndOfQueue()
		if s.notifier != nil {
			s.notifier.Notify(ctx, models.Notification{
				Kind:        models.KindEndOfQueue,
				Title:       "End of Queue",
				Description: "You've reached the end of the content queue.",
			})
		}
	}
	return resp
}
