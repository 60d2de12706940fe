package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// NotificationPublisher fans notifications out to live subscribers.
type NotificationPublisher interface {
	Publish(n models.Notification)
}

// Notifier is the narrow dependency other services use to emit notifications.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) models.Notification
}

// NotificationService keeps a bounded list of recent notifications and
// forwards each one to the live publisher.
type NotificationService struct {
	mu        sync.Mutex
	buf       []models.Notification
	next      int
	full      bool
	publisher NotificationPublisher
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService builds a service retaining at most size notifications.
func NewNotificationService(size int, publisher NotificationPublisher, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if size <= 0 {
		size = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		buf:       make([]models.Notification, size),
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Notify stamps, stores and publishes n.
func (s *NotificationService) Notify(_ context.Context, n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Variant == "" {
		n.Variant = models.VariantDefault
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	s.buf[s.next] = n
	s.next = (s.next + 1) % len(s.buf)
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	s.metrics.RecordNotification(n.Kind)
	s.logger.Debug("notification", zap.String("kind", n.Kind), zap.String("title", n.Title))
	if s.publisher != nil {
		s.publisher.Publish(n)
	}
	return n
}

// Recent returns up to limit notifications, newest first. A non-positive
// limit returns everything retained.
func (s *NotificationService) Recent(limit int) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.next
	if s.full {
		count = len(s.buf)
	}
	if limit <= 0 || limit > count {
		limit = count
	}
	out := make([]models.Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.buf)) % len(s.buf)
		out = append(out, s.buf[idx])
	}
	return out
}
