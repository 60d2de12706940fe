package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// ErrContentNotFound is returned when no content item has the requested id.
var ErrContentNotFound = errors.New("content item not found")

// ContentRepository holds the process-lifetime content dataset. Writes never
// touch a published slice: each Update builds a new slice with one entry
// replaced and swaps it in, so a snapshot returned by All stays consistent.
type ContentRepository struct {
	mu    sync.RWMutex
	items []models.ContentItem
}

// NewContentRepository copies the seed into a new repository.
func NewContentRepository(seed []models.ContentItem) *ContentRepository {
	items := make([]models.ContentItem, len(seed))
	copy(items, seed)
	return &ContentRepository{items: items}
}

// All returns the current snapshot. Callers must treat it as read-only.
func (r *ContentRepository) All(_ context.Context) []models.ContentItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items
}

// FindByID returns the item with the given id.
func (r *ContentRepository) FindByID(_ context.Context, id string) (*models.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, ErrContentNotFound
}

// Update applies fn to the item with the given id and publishes the result as
// a new snapshot. fn runs under the write lock, so a check inside fn and the
// replacement are atomic. Returning an error from fn leaves the snapshot as is.
func (r *ContentRepository) Update(_ context.Context, id string, fn func(models.ContentItem) (models.ContentItem, error)) (*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.items {
		if r.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrContentNotFound
	}

	updated, err := fn(r.items[idx])
	if err != nil {
		return nil, err
	}
	updated.ID = id

	next := make([]models.ContentItem, len(r.items))
	copy(next, r.items)
	next[idx] = updated
	r.items = next

	return &updated, nil
}

// Replace swaps in item for the entry with the same id.
func (r *ContentRepository) Replace(ctx context.Context, item models.ContentItem) error {
	_, err := r.Update(ctx, item.ID, func(models.ContentItem) (models.ContentItem, error) {
		return item, nil
	})
	return err
}
