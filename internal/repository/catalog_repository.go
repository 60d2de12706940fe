package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/noah-isme/contentguard-api/internal/models"
)

var (
	ErrPolicyNotFound = errors.New("policy not found")
	ErrAPIKeyNotFound = errors.New("api key not found")
	ErrAPIKeyExists   = errors.New("api key id already in use")
	ErrExportNotFound = errors.New("export job not found")
)

// PolicyRepository keeps moderation policies in memory for the process lifetime.
type PolicyRepository struct {
	mu       sync.RWMutex
	policies []models.Policy
}

// NewPolicyRepository seeds the repository.
func NewPolicyRepository(seed []models.Policy) *PolicyRepository {
	policies := make([]models.Policy, len(seed))
	copy(policies, seed)
	return &PolicyRepository{policies: policies}
}

// List returns a copy of every policy in insertion order.
func (r *PolicyRepository) List(_ context.Context) []models.Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Policy, len(r.policies))
	copy(out, r.policies)
	return out
}

// Get returns the policy with the given id.
func (r *PolicyRepository) Get(_ context.Context, id string) (*models.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.policies {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, ErrPolicyNotFound
}

// Exists reports whether id is taken.
func (r *PolicyRepository) Exists(ctx context.Context, id string) bool {
	_, err := r.Get(ctx, id)
	return err == nil
}

// Create appends the policy.
func (r *PolicyRepository) Create(_ context.Context, policy models.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies = append(r.policies, policy)
	return nil
}

// Update replaces the policy with the same id.
func (r *PolicyRepository) Update(_ context.Context, policy models.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.policies {
		if r.policies[i].ID == policy.ID {
			r.policies[i] = policy
			return nil
		}
	}
	return ErrPolicyNotFound
}

// Delete removes the policy with the given id.
func (r *PolicyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.policies {
		if r.policies[i].ID == id {
			r.policies = append(r.policies[:i:i], r.policies[i+1:]...)
			return nil
		}
	}
	return ErrPolicyNotFound
}

// APIKeyRepository keeps platform integrations in memory for the process lifetime.
type APIKeyRepository struct {
	mu      sync.RWMutex
	configs []models.APIKeyConfig
}

// NewAPIKeyRepository seeds the repository.
func NewAPIKeyRepository(seed []models.APIKeyConfig) *APIKeyRepository {
	configs := make([]models.APIKeyConfig, len(seed))
	copy(configs, seed)
	return &APIKeyRepository{configs: configs}
}

// List returns a copy of every config in insertion order.
func (r *APIKeyRepository) List(_ context.Context) []models.APIKeyConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.APIKeyConfig, len(r.configs))
	copy(out, r.configs)
	return out
}

// Create appends the config unless its id is already taken.
func (r *APIKeyRepository) Create(_ context.Context, cfg models.APIKeyConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.configs {
		if existing.ID == cfg.ID {
			return ErrAPIKeyExists
		}
	}
	r.configs = append(r.configs, cfg)
	return nil
}

// Modify applies fn to the config with the given id under the write lock.
func (r *APIKeyRepository) Modify(_ context.Context, id string, fn func(*models.APIKeyConfig)) (*models.APIKeyConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.configs {
		if r.configs[i].ID == id {
			fn(&r.configs[i])
			out := r.configs[i]
			return &out, nil
		}
	}
	return nil, ErrAPIKeyNotFound
}

// ExportJobRepository tracks history export jobs in memory.
type ExportJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.ExportJob
}

// NewExportJobRepository returns an empty job store.
func NewExportJobRepository() *ExportJobRepository {
	return &ExportJobRepository{jobs: make(map[string]models.ExportJob)}
}

// Create stores a new job.
func (r *ExportJobRepository) Create(_ context.Context, job models.ExportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

// Get returns the job with the given id.
func (r *ExportJobRepository) Get(_ context.Context, id string) (*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrExportNotFound
	}
	return &job, nil
}

// Modify applies fn to the stored job under the write lock.
func (r *ExportJobRepository) Modify(_ context.Context, id string, fn func(*models.ExportJob)) (*models.ExportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrExportNotFound
	}
	fn(&job)
	r.jobs[id] = job
	return &job, nil
}

// FinishedBefore lists finished or failed jobs whose completion predates cutoff.
func (r *ExportJobRepository) FinishedBefore(_ context.Context, cutoff time.Time) []models.ExportJob {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ExportJob
	for _, job := range r.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			out = append(out, job)
		}
	}
	return out
}

// Delete forgets the job.
func (r *ExportJobRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}
