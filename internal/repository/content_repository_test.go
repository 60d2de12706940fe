package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestContentRepositoryUpdateIsCopyOnWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(fixtures.Content())

	before := repo.All(ctx)
	updated, err := repo.Update(ctx, "c1", func(item models.ContentItem) (models.ContentItem, error) {
		item.Status = models.StatusApproved
		return item, nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)

	assert.Equal(t, models.StatusPending, before[0].Status, "published snapshot must not change")
	after := repo.All(ctx)
	assert.Equal(t, models.StatusApproved, after[0].Status)
	assert.Len(t, after, len(before))
}

func TestContentRepositoryUpdateErrorLeavesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(fixtures.Content())
	before := repo.All(ctx)

	boom := errors.New("refused")
	_, err := repo.Update(ctx, "c1", func(item models.ContentItem) (models.ContentItem, error) {
		return item, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, repo.All(ctx))

	_, err = repo.Update(ctx, "missing", func(item models.ContentItem) (models.ContentItem, error) {
		return item, nil
	})
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestContentRepositoryReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(fixtures.Content())

	item, err := repo.FindByID(ctx, "c2")
	require.NoError(t, err)
	item.Status = models.StatusRejected
	require.NoError(t, repo.Replace(ctx, *item))

	got, err := repo.FindByID(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)

	err = repo.Replace(ctx, models.ContentItem{ID: "missing"})
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestContentRepositoryFindByID(t *testing.T) {
	repo := NewContentRepository(fixtures.Content())

	item, err := repo.FindByID(context.Background(), "c5")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, item.Status)

	_, err = repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestContentRepositoryConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(fixtures.Content())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for _, item := range repo.All(ctx) {
					_ = item.Status
				}
			}
		}()
	}
	for _, id := range []string{"c1", "c2", "c3"} {
		_, err := repo.Update(ctx, id, func(item models.ContentItem) (models.ContentItem, error) {
			item.Status = models.StatusApproved
			return item, nil
		})
		require.NoError(t, err)
	}
	wg.Wait()
}

const seedYAML = `items:
  - id: y1
    type: comment
    text: "hello there"
    timestamp: "2024-03-01T10:00:00Z"
    status: pending
    userId: u1
    userName: Ada
    platform: twitter
  - id: y2
    type: image
    url: https://example.com/y2.png
    timestamp: "2024-03-01T09:00:00Z"
    status: rejected
    category: spam
    userId: u2
    userName: Grace
    platform: facebook
    moderatorId: m1
    moderatorName: Moderator 1
    moderatedAt: "2024-03-01T09:30:00Z"
    notes: promo links
`

func TestLoadContentYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	items, err := LoadContentYAML(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "hello there", *items[0].Text)
	assert.True(t, items[0].IsPending())
	assert.Equal(t, models.CategorySpam, *items[1].Category)
	assert.Equal(t, "Moderator 1", items[1].ModeratedBy.Name)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), items[1].ModeratedAt.UTC())
}

func TestLoadContentYAMLRejectsInvalidItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	bad := `items:
  - id: y1
    type: comment
    timestamp: "2024-03-01T10:00:00Z"
    status: pending
    userId: u1
    userName: Ada
    platform: twitter
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := LoadContentYAML(path)
	assert.Error(t, err)
}

func TestContentSeedRepositoryLoad(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContentSeedRepository(db)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "type", "url", "text", "created_at", "status", "category",
		"user_id", "user_name", "user_avatar", "platform",
		"moderator_id", "moderator_name", "moderated_at", "notes",
	}).
		AddRow("p1", "video", "https://example.com/v", nil, created, "pending", nil,
			"u1", "Ada", nil, "youtube", nil, nil, nil, nil).
		AddRow("p2", "comment", nil, "bad words", created.Add(-time.Hour), "rejected", "harassment",
			"u2", "Grace", "https://i.pravatar.cc/150?img=2", "twitter", "m1", "Moderator 1", created, "")

	mock.ExpectQuery(regexp.QuoteMeta("FROM content_items")).WillReturnRows(rows)

	items, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Timestamp.Equal(created))
	assert.Nil(t, items[0].Text)
	assert.Equal(t, models.CategoryHarassment, *items[1].Category)
	assert.Equal(t, "", *items[1].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentSeedRepositoryLoadError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContentSeedRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM content_items")).WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
