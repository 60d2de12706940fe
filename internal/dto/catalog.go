package dto

import (
	"time"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// PolicyQuery filters the policy list.
type PolicyQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}

// PolicyRequest creates or updates a policy.
type PolicyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Automated   bool   `json:"automated"`
}

// CreateAPIKeyRequest registers a platform integration.
type CreateAPIKeyRequest struct {
	Name     string `json:"name" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

// APIKeyView is the API representation of a key config. Key is masked except
// right after it was issued.
type APIKeyView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Key          string              `json:"key"`
	Platform     models.Platform     `json:"platform"`
	Status       models.APIKeyStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastUsed     *time.Time          `json:"lastUsed,omitempty"`
	RequestLimit int                 `json:"requestLimit"`
	RequestsUsed int                 `json:"requestsUsed"`
	UsagePercent float64             `json:"usagePercent"`
}

// APIKeyList adds aggregate usage to the key list.
type APIKeyList struct {
	Keys              []APIKeyView `json:"keys"`
	TotalRequestLimit int          `json:"totalRequestLimit"`
	TotalRequestsUsed int          `json:"totalRequestsUsed"`
}
