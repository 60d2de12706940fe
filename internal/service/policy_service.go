package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

type policyRepository interface {
	List(ctx context.Context) []models.Policy
	Get(ctx context.Context, id string) (*models.Policy, error)
	Exists(ctx context.Context, id string) bool
	Create(ctx context.Context, policy models.Policy) error
	Update(ctx context.Context, policy models.Policy) error
	Delete(ctx context.Context, id string) error
}

// PolicyService manages moderation policies. Mutations are reserved for admins.
type PolicyService struct {
	repo     policyRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewPolicyService constructs a PolicyService.
func NewPolicyService(repo policyRepository, notifier Notifier, logger *zap.Logger) *PolicyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// List returns policies matching the search text and category.
func (s *PolicyService) List(ctx context.Context, q dto.PolicyQuery) []models.Policy {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Policy, 0)
	for _, p := range s.repo.List(ctx) {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.Category != "" && q.Category != "all" && string(p.Category) != q.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Create adds a policy.
func (s *PolicyService) Create(ctx context.Context, actor models.Identity, req dto.PolicyRequest) (*models.Policy, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	policy, err := policyFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	millis := now.UnixMilli()
	policy.ID = fmt.Sprintf("p%d", millis)
	for s.repo.Exists(ctx, policy.ID) {
		millis++
		policy.ID = fmt.Sprintf("p%d", millis)
	}
	policy.CreatedAt = now
	policy.UpdatedAt = now

	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create policy")
	}
	s.logger.Info("policy created", zap.String("policy_id", policy.ID), zap.String("actor_id", actor.ID))
	s.notify(ctx, models.KindPolicyCreated, "Policy Created", fmt.Sprintf("%s policy has been created successfully.", policy.Name))
	return &policy, nil
}

// Update replaces the editable fields of policy id.
func (s *PolicyService) Update(ctx context.Context, actor models.Identity, id string, req dto.PolicyRequest) (*models.Policy, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	policy, err := policyFromRequest(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapPolicyError(err)
	}

	policy.ID = existing.ID
	policy.CreatedAt = existing.CreatedAt
	policy.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, mapPolicyError(err)
	}
	s.logger.Info("policy updated", zap.String("policy_id", policy.ID), zap.String("actor_id", actor.ID))
	s.notify(ctx, models.KindPolicyUpdated, "Policy Updated", fmt.Sprintf("%s policy has been updated successfully.", policy.Name))
	return &policy, nil
}

// Delete removes policy id.
func (s *PolicyService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapPolicyError(err)
	}
	s.logger.Info("policy deleted", zap.String("policy_id", id), zap.String("actor_id", actor.ID))
	s.notify(ctx, models.KindPolicyDeleted, "Policy Deleted", "The policy has been deleted successfully.")
	return nil
}

func (s *PolicyService) notify(ctx context.Context, kind, title, description string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, models.Notification{Kind: kind, Title: title, Description: description})
	}
}

func policyFromRequest(req dto.PolicyRequest) (models.Policy, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Policy{}, appErrors.Clone(appErrors.ErrValidation, "Policy name is required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return models.Policy{}, appErrors.Clone(appErrors.ErrValidation, "Policy description is required")
	}

	category := models.Category(req.Category)
	if category == "" {
		category = models.CategoryOther
	}
	if !category.Valid() {
		return models.Policy{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", req.Category))
	}
	severity := models.Severity(req.Severity)
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !severity.Valid() {
		return models.Policy{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown severity %q", req.Severity))
	}

	return models.Policy{
		Name:        name,
		Description: description,
		Category:    category,
		Severity:    severity,
		Automated:   req.Automated,
	}, nil
}

func mapPolicyError(err error) error {
	if errors.Is(err, repository.ErrPolicyNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "policy not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "policy storage failed")
}

func requireAdmin(actor models.Identity) error {
	if actor.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "only admins can change policies")
	}
	return nil
}
