package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
)

const (
	dashboardCacheKey   = "dashboard:summary"
	pendingPreviewLimit = 3
)

// DashboardService composes the overview page and caches the result.
type DashboardService struct {
	repo   ContentStore
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs a DashboardService. cache may be nil.
func NewDashboardService(repo ContentStore, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Summary returns the dashboard and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	if s.cache.Enabled() {
		var cached dto.DashboardSummary
		hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache unavailable, composing fresh summary", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	summary := s.compose(s.repo.All(ctx))
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", dashboardCacheKey), zap.Error(err))
		}
	}
	return summary, false, nil
}

// Invalidate drops the cached summary.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) compose(items []models.ContentItem) *dto.DashboardSummary {
	summary := &dto.DashboardSummary{
		Weekly:         fixtures.WeeklyVolume(),
		PendingPreview: make([]models.ContentItem, 0, pendingPreviewLimit),
		GeneratedAt:    s.now().UTC(),
	}

	typeCounts := make(map[models.ContentType]int)
	violationCounts := make(map[models.Category]int)
	for _, item := range items {
		summary.Totals.Total++
		typeCounts[item.Type]++
		switch item.Status {
		case models.StatusPending:
			summary.Totals.Pending++
			if len(summary.PendingPreview) < pendingPreviewLimit {
				summary.PendingPreview = append(summary.PendingPreview, item)
			}
		case models.StatusApproved:
			summary.Totals.Approved++
		case models.StatusRejected:
			summary.Totals.Rejected++
			if item.Category != nil {
				violationCounts[*item.Category]++
			}
		}
	}
	summary.Totals.Decided = summary.Totals.Approved + summary.Totals.Rejected

	summary.ContentTypes = make([]dto.DistributionBucket, 0, len(models.ContentTypes))
	for _, t := range models.ContentTypes {
		summary.ContentTypes = append(summary.ContentTypes, bucket(string(t), typeCounts[t], summary.Totals.Total))
	}

	summary.Violations = make([]dto.DistributionBucket, 0, len(models.Categories))
	for _, c := range models.Categories {
		if violationCounts[c] == 0 {
			continue
		}
		summary.Violations = append(summary.Violations, bucket(c.Label(), violationCounts[c], summary.Totals.Rejected))
	}
	return summary
}

func bucket(name string, value, total int) dto.DistributionBucket {
	b := dto.DistributionBucket{Name: name, Value: value}
	if total > 0 {
		b.Percent = math.Round(float64(value)/float64(total)*1000) / 10
	}
	return b
}
