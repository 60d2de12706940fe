package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

const (
	apiKeyAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	apiKeyLength        = 32
	defaultRequestLimit = 10000
)

type apiKeyRepository interface {
	List(ctx context.Context) []models.APIKeyConfig
	Create(ctx context.Context, cfg models.APIKeyConfig) error
	Modify(ctx context.Context, id string, fn func(*models.APIKeyConfig)) (*models.APIKeyConfig, error)
}

// APIKeyService manages platform integration keys.
type APIKeyService struct {
	repo      apiKeyRepository
	notifier  Notifier
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	generate  func() (string, error)
}

// NewAPIKeyService constructs an APIKeyService.
func NewAPIKeyService(repo apiKeyRepository, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *APIKeyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &APIKeyService{repo: repo, notifier: notifier, validator: validate, logger: logger, now: time.Now, generate: generateAPIKey}
}

// List returns every key with the secret masked.
func (s *APIKeyService) List(ctx context.Context) dto.APIKeyList {
	configs := s.repo.List(ctx)
	out := dto.APIKeyList{Keys: make([]dto.APIKeyView, 0, len(configs))}
	for _, cfg := range configs {
		out.Keys = append(out.Keys, apiKeyView(cfg, true))
		out.TotalRequestLimit += cfg.RequestLimit
		out.TotalRequestsUsed += cfg.RequestsUsed
	}
	return out
}

// Create issues a new active key. The full key is only returned here and by Regenerate.
func (s *APIKeyService) Create(ctx context.Context, req dto.CreateAPIKeyRequest) (*dto.APIKeyView, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if err := s.validator.Struct(req); err != nil {
		s.notifyInvalid(ctx)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and platform are required")
	}
	platform := models.Platform(req.Platform)
	if !platform.Valid() {
		s.notifyInvalid(ctx)
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown platform %q", req.Platform))
	}

	key, err := s.generate()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate api key")
	}
	now := s.now().UTC()
	cfg := models.APIKeyConfig{
		Name:         req.Name,
		Key:          key,
		Platform:     platform,
		Status:       models.APIKeyActive,
		CreatedAt:    now,
		RequestLimit: defaultRequestLimit,
	}
	for millis := now.UnixMilli(); ; millis++ {
		cfg.ID = fmt.Sprintf("api%d", millis)
		err = s.repo.Create(ctx, cfg)
		if !errors.Is(err, repository.ErrAPIKeyExists) {
			break
		}
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store api key")
	}

	s.logger.Info("api key created", zap.String("api_key_id", cfg.ID), zap.String("platform", string(cfg.Platform)))
	s.notify(ctx, models.Notification{
		Kind:        models.KindAPIKeyCreated,
		Title:       "API Key Created",
		Description: "Your new API key has been created successfully.",
	})
	view := apiKeyView(cfg, false)
	return &view, nil
}

// Toggle flips a key between active and inactive.
func (s *APIKeyService) Toggle(ctx context.Context, id string) (*dto.APIKeyView, error) {
	cfg, err := s.repo.Modify(ctx, id, func(c *models.APIKeyConfig) {
		if c.Status == models.APIKeyActive {
			c.Status = models.APIKeyInactive
		} else {
			c.Status = models.APIKeyActive
		}
	})
	if err != nil {
		return nil, mapAPIKeyError(err)
	}

	title := "API Key Deactivated"
	if cfg.Status == models.APIKeyActive {
		title = "API Key Activated"
	}
	s.notify(ctx, models.Notification{
		Kind:        models.KindAPIKeyToggled,
		Title:       title,
		Description: fmt.Sprintf("%s is now %s.", cfg.Name, cfg.Status),
	})
	view := apiKeyView(*cfg, true)
	return &view, nil
}

// Regenerate replaces the secret of key id and stamps its last use.
func (s *APIKeyService) Regenerate(ctx context.Context, id string) (*dto.APIKeyView, error) {
	key, err := s.generate()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate api key")
	}
	now := s.now().UTC()
	cfg, err := s.repo.Modify(ctx, id, func(c *models.APIKeyConfig) {
		c.Key = key
		c.LastUsed = &now
	})
	if err != nil {
		return nil, mapAPIKeyError(err)
	}

	s.logger.Info("api key regenerated", zap.String("api_key_id", cfg.ID))
	s.notify(ctx, models.Notification{
		Kind:        models.KindAPIKeyRotated,
		Title:       "API Key Regenerated",
		Description: fmt.Sprintf("A new key has been generated for %s.", cfg.Name),
	})
	view := apiKeyView(*cfg, false)
	return &view, nil
}

func (s *APIKeyService) notifyInvalid(ctx context.Context) {
	s.notify(ctx, models.Notification{
		Kind:        models.KindAPIKeyInvalid,
		Title:       "Error",
		Description: "Please fill in all fields and generate an API key.",
		Variant:     models.VariantDestructive,
	})
}

func (s *APIKeyService) notify(ctx context.Context, n models.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

func apiKeyView(cfg models.APIKeyConfig, masked bool) dto.APIKeyView {
	view := dto.APIKeyView{
		ID:           cfg.ID,
		Name:         cfg.Name,
		Key:          cfg.Key,
		Platform:     cfg.Platform,
		Status:       cfg.Status,
		CreatedAt:    cfg.CreatedAt,
		LastUsed:     cfg.LastUsed,
		RequestLimit: cfg.RequestLimit,
		RequestsUsed: cfg.RequestsUsed,
	}
	if masked {
		view.Key = MaskAPIKey(cfg.Key)
	}
	if cfg.RequestLimit > 0 {
		view.UsagePercent = math.Round(float64(cfg.RequestsUsed)/float64(cfg.RequestLimit)*1000) / 10
	}
	return view
}

// MaskAPIKey hides all but the first and last four characters.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func generateAPIKey() (string, error) {
	limit := big.NewInt(int64(len(apiKeyAlphabet)))
	var b strings.Builder
	b.Grow(apiKeyLength)
	for i := 0; i < apiKeyLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(apiKeyAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func mapAPIKeyError(err error) error {
	if errors.Is(err, repository.ErrAPIKeyNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "api key not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "api key storage failed")
}
