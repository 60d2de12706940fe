package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

var moderatorIdentity = models.Identity{ID: "2", Email: "mod@example.com", Name: "Mod", Role: models.RoleModerator}

func newPolicyService(t *testing.T) (*PolicyService, *repository.PolicyRepository, *notifierStub) {
	t.Helper()
	repo := repository.NewPolicyRepository(fixtures.Policies())
	notifier := &notifierStub{}
	svc := NewPolicyService(repo, notifier, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, repo, notifier
}

func TestPolicyList(t *testing.T) {
	svc, _, _ := newPolicyService(t)

	assert.Len(t, svc.List(context.Background(), dto.PolicyQuery{}), 7)

	got := svc.List(context.Background(), dto.PolicyQuery{Search: "ADULT"})
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Contains(t, p.Name+p.Description, "dult")
	}

	byCategory := svc.List(context.Background(), dto.PolicyQuery{Category: "hate_speech"})
	require.Len(t, byCategory, 1)
	assert.Equal(t, "p1", byCategory[0].ID)
}

func TestPolicyCreate(t *testing.T) {
	svc, repo, notifier := newPolicyService(t)

	policy, err := svc.Create(context.Background(), reviewer, dto.PolicyRequest{Name: "  Scam Links ", Description: "Flags phishing links."})
	require.NoError(t, err)
	assert.Equal(t, "p1700000000000", policy.ID)
	assert.Equal(t, "Scam Links", policy.Name)
	assert.Equal(t, models.CategoryOther, policy.Category)
	assert.Equal(t, models.SeverityMedium, policy.Severity)
	assert.True(t, repo.Exists(context.Background(), policy.ID))

	second, err := svc.Create(context.Background(), reviewer, dto.PolicyRequest{Name: "Other", Description: "Other."})
	require.NoError(t, err)
	assert.Equal(t, "p1700000000001", second.ID)

	last := notifier.last()
	assert.Equal(t, "Policy Created", last.Title)
	assert.Equal(t, "Other policy has been created successfully.", last.Description)
}

func TestPolicyCreateValidation(t *testing.T) {
	svc, _, notifier := newPolicyService(t)

	_, err := svc.Create(context.Background(), reviewer, dto.PolicyRequest{Name: "  ", Description: "x"})
	require.Error(t, err)
	assert.Equal(t, "Policy name is required", appErrors.FromError(err).Message)

	_, err = svc.Create(context.Background(), reviewer, dto.PolicyRequest{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "Policy description is required", appErrors.FromError(err).Message)

	_, err = svc.Create(context.Background(), reviewer, dto.PolicyRequest{Name: "x", Description: "y", Severity: "extreme"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Empty(t, notifier.titles())
}

func TestPolicyMutationsRequireAdmin(t *testing.T) {
	svc, _, _ := newPolicyService(t)

	_, err := svc.Create(context.Background(), moderatorIdentity, dto.PolicyRequest{Name: "x", Description: "y"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
	_, err = svc.Update(context.Background(), moderatorIdentity, "p1", dto.PolicyRequest{Name: "x", Description: "y"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
	err = svc.Delete(context.Background(), moderatorIdentity, "p1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
}

func TestPolicyUpdateAndDelete(t *testing.T) {
	svc, repo, notifier := newPolicyService(t)
	original, err := repo.Get(context.Background(), "p1")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), reviewer, "p1", dto.PolicyRequest{
		Name: "Hate Speech", Description: "Updated.", Category: "hate_speech", Severity: "high", Automated: true,
	})
	require.NoError(t, err)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), updated.UpdatedAt)
	assert.Equal(t, "Hate Speech policy has been updated successfully.", notifier.last().Description)

	require.NoError(t, svc.Delete(context.Background(), reviewer, "p1"))
	assert.False(t, repo.Exists(context.Background(), "p1"))
	assert.Equal(t, "Policy Deleted", notifier.last().Title)

	err = svc.Delete(context.Background(), reviewer, "p1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
	_, err = svc.Update(context.Background(), reviewer, "p1", dto.PolicyRequest{Name: "x", Description: "y"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
