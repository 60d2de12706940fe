package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
)

func TestPolicyRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPolicyRepository(fixtures.Policies())

	require.Len(t, repo.List(ctx), 7)
	assert.True(t, repo.Exists(ctx, "p3"))

	require.NoError(t, repo.Create(ctx, models.Policy{ID: "p100", Name: "New"}))
	require.Len(t, repo.List(ctx), 8)

	require.NoError(t, repo.Update(ctx, models.Policy{ID: "p100", Name: "Renamed"}))
	got, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	listed := repo.List(ctx)
	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.Equal(t, "p1", listed[0].ID, "earlier listings are unaffected")
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), ErrPolicyNotFound)
	assert.ErrorIs(t, repo.Update(ctx, models.Policy{ID: "nope"}), ErrPolicyNotFound)
	assert.Len(t, repo.List(ctx), 7)
}

func TestAPIKeyRepositoryModify(t *testing.T) {
	ctx := context.Background()
	repo := NewAPIKeyRepository(fixtures.APIKeys())

	updated, err := repo.Modify(ctx, "api4", func(cfg *models.APIKeyConfig) {
		cfg.Status = models.APIKeyActive
	})
	require.NoError(t, err)
	assert.Equal(t, models.APIKeyActive, updated.Status)
	assert.Equal(t, models.APIKeyActive, repo.List(ctx)[3].Status)

	_, err = repo.Modify(ctx, "missing", func(*models.APIKeyConfig) {})
	assert.ErrorIs(t, err, ErrAPIKeyNotFound)
}

func TestExportJobRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewExportJobRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, models.ExportJob{ID: "j1", Status: models.ExportStatusQueued}))
	_, err := repo.Modify(ctx, "j1", func(job *models.ExportJob) {
		job.Status = models.ExportStatusFinished
		finished := now.Add(-2 * time.Hour)
		job.FinishedAt = &finished
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, models.ExportJob{ID: "j2", Status: models.ExportStatusQueued}))

	stale := repo.FinishedBefore(ctx, now.Add(-time.Hour))
	require.Len(t, stale, 1)
	assert.Equal(t, "j1", stale[0].ID)

	repo.Delete(ctx, "j1")
	_, err = repo.Get(ctx, "j1")
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestAPIKeyRepositoryCreateRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewAPIKeyRepository(fixtures.APIKeys())

	err := repo.Create(ctx, models.APIKeyConfig{ID: "api1", Name: "dup"})
	assert.ErrorIs(t, err, ErrAPIKeyExists)
	assert.Len(t, repo.List(ctx), 5)

	require.NoError(t, repo.Create(ctx, models.APIKeyConfig{ID: "api9", Name: "fresh"}))
	assert.Len(t, repo.List(ctx), 6)
}
