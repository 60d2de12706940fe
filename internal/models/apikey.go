package models

import "time"

// APIKeyStatus toggles whether a platform integration may call in.
type APIKeyStatus string

const (
	APIKeyActive   APIKeyStatus = "active"
	APIKeyInactive APIKeyStatus = "inactive"
)

// APIKeyConfig is a platform integration credential.
type APIKeyConfig struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Key          string       `json:"key"`
	Platform     Platform     `json:"platform"`
	Status       APIKeyStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastUsed     *time.Time   `json:"lastUsed,omitempty"`
	RequestLimit int          `json:"requestLimit"`
	RequestsUsed int          `json:"requestsUsed"`
}
