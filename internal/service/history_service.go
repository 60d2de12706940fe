package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

// Date range presets for history filtering.
const (
	DateRangeAll   = "all"
	DateRangeToday = "today"
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
)

// HistoryService lists decided content.
type HistoryService struct {
	repo      ContentStore
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
	now       func() time.Time

	mu      sync.Mutex
	last    models.HistoryFilter
	hasLast bool
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(repo ContentStore, validate *validator.Validate, logger *zap.Logger, pageSize int) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &HistoryService{repo: repo, validator: validate, logger: logger, pageSize: pageSize, now: time.Now}
}

// List returns one page of history. A filter different from the previous
// request always yields page 1.
func (s *HistoryService) List(ctx context.Context, q dto.HistoryQuery) ([]models.ContentItem, models.Pagination, error) {
	if err := s.validator.Struct(q.HistoryFilter); err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid history filters")
	}
	filter := normalizeHistoryFilter(q.HistoryFilter)

	page := q.Page
	s.mu.Lock()
	if s.hasLast && s.last != filter {
		page = 1
	}
	s.last = filter
	s.hasLast = true
	s.mu.Unlock()

	items := FilterHistory(s.repo.All(ctx), filter, s.now())
	pagination := models.NewPagination(page, s.pageSize, len(items))
	start, end := pagination.Bounds()
	out := make([]models.ContentItem, end-start)
	copy(out, items[start:end])
	return out, pagination, nil
}

// Collect returns every history item matching filter, unpaged.
func (s *HistoryService) Collect(ctx context.Context, filter models.HistoryFilter) ([]models.ContentItem, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid history filters")
	}
	return FilterHistory(s.repo.All(ctx), normalizeHistoryFilter(filter), s.now()), nil
}

func normalizeHistoryFilter(f models.HistoryFilter) models.HistoryFilter {
	f.Search = strings.TrimSpace(f.Search)
	for _, field := range []*string{&f.DateRange, &f.ContentType, &f.Decision, &f.Platform} {
		if *field == "" {
			*field = "all"
		}
	}
	return f
}

// FilterHistory selects non-pending items matching f, keeping repository order.
// Date ranges are measured back from now in now's location.
func FilterHistory(items []models.ContentItem, f models.HistoryFilter, now time.Time) []models.ContentItem {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	since, bounded := rangeStart(f.DateRange, now)

	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.IsPending() {
			continue
		}
		if query != "" && !matchesSearch(item, query) {
			continue
		}
		if bounded && (item.ModeratedAt == nil || item.ModeratedAt.Before(since)) {
			continue
		}
		if f.ContentType != "" && f.ContentType != "all" && string(item.Type) != f.ContentType {
			continue
		}
		if f.Decision != "" && f.Decision != "all" && string(item.Status) != f.Decision {
			continue
		}
		if f.Platform != "" && f.Platform != "all" && string(item.Platform) != f.Platform {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item models.ContentItem, query string) bool {
	if strings.Contains(strings.ToLower(item.User.Name), query) {
		return true
	}
	if item.Text != nil && strings.Contains(strings.ToLower(*item.Text), query) {
		return true
	}
	if item.ModeratedBy != nil && strings.Contains(strings.ToLower(item.ModeratedBy.Name), query) {
		return true
	}
	return item.Notes != nil && strings.Contains(strings.ToLower(*item.Notes), query)
}

func rangeStart(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case DateRangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}
