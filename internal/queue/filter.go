// Package queue holds the review queue: the pure filter/sort engine over the
// pending universe and the review controller that tracks the operator's
// position in it.
package queue

import (
	"fmt"
	"sort"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// All disables the content type or platform filter.
const All = "all"

// SortOrder orders the queue by submission time.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Filters are the operator-selected narrowing of the pending universe.
type Filters struct {
	ContentType string    `json:"contentType"`
	Platform    string    `json:"platform"`
	SortOrder   SortOrder `json:"sortOrder"`
}

// DefaultFilters returns all/all/newest.
func DefaultFilters() Filters {
	return Filters{ContentType: All, Platform: All, SortOrder: SortNewest}
}

// Normalize fills empty fields with defaults and rejects unknown values.
func (f Filters) Normalize() (Filters, error) {
	if f.ContentType == "" {
		f.ContentType = All
	}
	if f.Platform == "" {
		f.Platform = All
	}
	if f.SortOrder == "" {
		f.SortOrder = SortNewest
	}
	if f.ContentType != All && !models.ContentType(f.ContentType).Valid() {
		return f, fmt.Errorf("unknown content type %q", f.ContentType)
	}
	if f.Platform != All && !models.Platform(f.Platform).Valid() {
		return f, fmt.Errorf("unknown platform %q", f.Platform)
	}
	if f.SortOrder != SortNewest && f.SortOrder != SortOldest {
		return f, fmt.Errorf("unknown sort order %q", f.SortOrder)
	}
	return f, nil
}

func (f Filters) matches(item models.ContentItem) bool {
	if !item.IsPending() {
		return false
	}
	if f.ContentType != All && string(item.Type) != f.ContentType {
		return false
	}
	if f.Platform != All && string(item.Platform) != f.Platform {
		return false
	}
	return true
}

// Apply narrows items to the pending ones matching f and sorts them stably by
// timestamp. The result is always a fresh slice; the input is never modified.
func Apply(items []models.ContentItem, f Filters) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if f.matches(item) {
			out = append(out, item)
		}
	}
	if f.SortOrder == SortOldest {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	}
	return out
}

// TypeCounts is the number of pending items per content type.
type TypeCounts struct {
	All     int `json:"all"`
	Image   int `json:"image"`
	Video   int `json:"video"`
	Comment int `json:"comment"`
}

// CountPending tallies the pending universe by type, ignoring filters.
func CountPending(items []models.ContentItem) TypeCounts {
	var c TypeCounts
	for _, item := range items {
		if !item.IsPending() {
			continue
		}
		c.All++
		switch item.Type {
		case models.ContentTypeImage:
			c.Image++
		case models.ContentTypeVideo:
			c.Video++
		case models.ContentTypeComment:
			c.Comment++
		}
	}
	return c
}
