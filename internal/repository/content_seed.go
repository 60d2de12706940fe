package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// contentRecord is the flat storage shape of a content item, shared by the
// YAML fixture file and the content_items table.
type contentRecord struct {
	ID            string  `db:"id" yaml:"id"`
	Type          string  `db:"type" yaml:"type"`
	URL           *string `db:"url" yaml:"url,omitempty"`
	Text          *string `db:"text" yaml:"text,omitempty"`
	Timestamp     string  `db:"created_at" yaml:"timestamp"`
	Status        string  `db:"status" yaml:"status"`
	Category      *string `db:"category" yaml:"category,omitempty"`
	UserID        string  `db:"user_id" yaml:"userId"`
	UserName      string  `db:"user_name" yaml:"userName"`
	UserAvatar    *string `db:"user_avatar" yaml:"userAvatar,omitempty"`
	Platform      string  `db:"platform" yaml:"platform"`
	ModeratorID   *string `db:"moderator_id" yaml:"moderatorId,omitempty"`
	ModeratorName *string `db:"moderator_name" yaml:"moderatorName,omitempty"`
	ModeratedAt   *string `db:"moderated_at" yaml:"moderatedAt,omitempty"`
	Notes         *string `db:"notes" yaml:"notes,omitempty"`
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}

func (r contentRecord) toModel() (models.ContentItem, error) {
	created, err := parseTime(r.Timestamp)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("content item %s: timestamp: %w", r.ID, err)
	}
	item := models.ContentItem{
		ID:        r.ID,
		Type:      models.ContentType(r.Type),
		URL:       r.URL,
		Text:      r.Text,
		Timestamp: created,
		Status:    models.ModerationStatus(r.Status),
		User:      models.Author{ID: r.UserID, Name: r.UserName, Avatar: r.UserAvatar},
		Platform:  models.Platform(r.Platform),
		Notes:     r.Notes,
	}
	if r.Category != nil {
		cat := models.Category(*r.Category)
		item.Category = &cat
	}
	if r.ModeratorID != nil {
		name := ""
		if r.ModeratorName != nil {
			name = *r.ModeratorName
		}
		item.ModeratedBy = &models.Moderator{ID: *r.ModeratorID, Name: name}
	}
	if r.ModeratedAt != nil {
		at, err := parseTime(*r.ModeratedAt)
		if err != nil {
			return models.ContentItem{}, fmt.Errorf("content item %s: moderatedAt: %w", r.ID, err)
		}
		item.ModeratedAt = &at
	}
	if err := item.Validate(); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

func toModels(records []contentRecord) ([]models.ContentItem, error) {
	items := make([]models.ContentItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		item, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("content item %s: duplicate id", item.ID)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

type contentFile struct {
	Items []contentRecord `yaml:"items"`
}

// LoadContentYAML reads a content seed file of the form `items: [...]`.
func LoadContentYAML(path string) ([]models.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content seed: %w", err)
	}
	var file contentFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse content seed: %w", err)
	}
	return toModels(file.Items)
}

// ContentSeedRepository reads the content dataset from PostgreSQL once at startup.
type ContentSeedRepository struct {
	db *sqlx.DB
}

// NewContentSeedRepository constructs the repository.
func NewContentSeedRepository(db *sqlx.DB) *ContentSeedRepository {
	return &ContentSeedRepository{db: db}
}

const contentSeedQuery = `SELECT id, type, url, text, created_at, status, category,
	user_id, user_name, user_avatar, platform,
	moderator_id, moderator_name, moderated_at, notes
FROM content_items
ORDER BY created_at DESC, id`

// Load returns every content item in the table.
func (r *ContentSeedRepository) Load(ctx context.Context) ([]models.ContentItem, error) {
	var records []contentRecord
	if err := r.db.SelectContext(ctx, &records, contentSeedQuery); err != nil {
		return nil, fmt.Errorf("load content items: %w", err)
	}
	return toModels(records)
}
