package dto

import "github.com/noah-isme/contentguard-api/internal/queue"

// ReviewFiltersRequest changes the queue filters. Empty fields fall back to "all"/"newest".
type ReviewFiltersRequest struct {
	ContentType string `json:"contentType" validate:"omitempty,oneof=all image video comment"`
	Platform    string `json:"platform" validate:"omitempty,oneof=all facebook twitter instagram tiktok youtube"`
	SortOrder   string `json:"sortOrder" validate:"omitempty,oneof=newest oldest"`
}

// ReviewModeRequest toggles list/single mode.
type ReviewModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=list single"`
}

// ApproveRequest carries optional reviewer notes.
type ApproveRequest struct {
	Notes string `json:"notes"`
}

// RejectRequest carries the violation category and reviewer notes.
type RejectRequest struct {
	Category string `json:"category" validate:"required"`
	Notes    string `json:"notes"`
}

// ReviewResponse is the queue view plus any informational signal raised by the transition.
type ReviewResponse struct {
	queue.View
	EndOfQueue bool `json:"endOfQueue,omitempty"`
}
