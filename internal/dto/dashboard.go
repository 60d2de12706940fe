package dto

import (
	"time"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
)

// DashboardSummary aggregates moderation activity for the overview page.
type DashboardSummary struct {
	Totals         DashboardTotals        `json:"totals"`
	ContentTypes   []DistributionBucket   `json:"contentTypes"`
	Violations     []DistributionBucket   `json:"violations"`
	Weekly         []fixtures.DailyVolume `json:"weekly"`
	PendingPreview []models.ContentItem   `json:"pendingPreview"`
	GeneratedAt    time.Time              `json:"generatedAt"`
}

// DashboardTotals counts content by status.
type DashboardTotals struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Decided  int `json:"decided"`
}

// DistributionBucket is one slice of a distribution chart.
type DistributionBucket struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}
