package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentType enumerates the kinds of submitted content.
type ContentType string

const (
	ContentTypeImage   ContentType = "image"
	ContentTypeVideo   ContentType = "video"
	ContentTypeComment ContentType = "comment"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{ContentTypeImage, ContentTypeVideo, ContentTypeComment}

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeImage, ContentTypeVideo, ContentTypeComment:
		return true
	}
	return false
}

// ModerationStatus is the lifecycle state of a content item.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Category is a violation category attached to rejected content.
type Category string

const (
	CategoryHateSpeech     Category = "hate_speech"
	CategoryHarassment     Category = "harassment"
	CategoryViolence       Category = "violence"
	CategoryAdult          Category = "adult"
	CategorySpam           Category = "spam"
	CategoryMisinformation Category = "misinformation"
	CategoryCopyright      Category = "copyright"
	CategoryOther          Category = "other"
)

// Categories lists every violation category in display order.
var Categories = []Category{
	CategoryHateSpeech,
	CategoryHarassment,
	CategoryViolence,
	CategoryAdult,
	CategorySpam,
	CategoryMisinformation,
	CategoryCopyright,
	CategoryOther,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label renders the category for people, e.g. "hate speech".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// Platform is the social network a content item was submitted on.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// Platforms lists every platform in display order.
var Platforms = []Platform{PlatformFacebook, PlatformTwitter, PlatformInstagram, PlatformTikTok, PlatformYouTube}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Author is the user who submitted a content item.
type Author struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

// Moderator is the operator who decided a content item.
type Moderator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContentItem is one unit of user-generated content awaiting or past review.
type ContentItem struct {
	ID          string           `json:"id"`
	Type        ContentType      `json:"type"`
	URL         *string          `json:"url,omitempty"`
	Text        *string          `json:"text,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	Status      ModerationStatus `json:"status"`
	Category    *Category        `json:"category,omitempty"`
	User        Author           `json:"user"`
	Platform    Platform         `json:"platform"`
	ModeratedBy *Moderator       `json:"moderatedBy,omitempty"`
	ModeratedAt *time.Time       `json:"moderatedAt,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// IsPending reports whether the item still awaits a decision.
func (c ContentItem) IsPending() bool {
	return c.Status == StatusPending
}

// Validate checks the structural invariants of a content item. Seeded data is
// allowed to carry a category on approved items.
func (c ContentItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("content item: id is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("content item %s: unknown type %q", c.ID, c.Type)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("content item %s: unknown status %q", c.ID, c.Status)
	}
	if !c.Platform.Valid() {
		return fmt.Errorf("content item %s: unknown platform %q", c.ID, c.Platform)
	}
	switch c.Type {
	case ContentTypeComment:
		if c.Text == nil || c.URL != nil {
			return fmt.Errorf("content item %s: comments carry text only", c.ID)
		}
	default:
		if c.URL == nil || c.Text != nil {
			return fmt.Errorf("content item %s: %s items carry a url only", c.ID, c.Type)
		}
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("content item %s: timestamp is required", c.ID)
	}
	decided := c.ModeratedBy != nil && c.ModeratedAt != nil
	if c.IsPending() == decided {
		return fmt.Errorf("content item %s: moderation stamps do not match status %s", c.ID, c.Status)
	}
	if c.Status == StatusRejected && c.Category == nil {
		return fmt.Errorf("content item %s: rejected items need a category", c.ID)
	}
	if c.Status == StatusPending && c.Category != nil {
		return fmt.Errorf("content item %s: pending items cannot carry a category", c.ID)
	}
	if c.Category != nil && !c.Category.Valid() {
		return fmt.Errorf("content item %s: unknown category %q", c.ID, *c.Category)
	}
	return nil
}
