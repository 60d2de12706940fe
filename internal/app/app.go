// Package app assembles the moderation console from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/realtime"
	"github.com/noah-isme/contentguard-api/internal/repository"
	"github.com/noah-isme/contentguard-api/internal/service"
	"github.com/noah-isme/contentguard-api/pkg/cache"
	"github.com/noah-isme/contentguard-api/pkg/config"
	"github.com/noah-isme/contentguard-api/pkg/database"
	"github.com/noah-isme/contentguard-api/pkg/jobs"
	"github.com/noah-isme/contentguard-api/pkg/storage"
)

// Container holds the wired services of one console process.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Metrics        *service.MetricsService
	Hub            *realtime.Hub
	Notifications  *service.NotificationService
	Sessions       *service.SessionService
	Content        *repository.ContentRepository
	Decisions      *service.DecisionService
	Reviews        *service.ReviewService
	History        *service.HistoryService
	Dashboard      *service.DashboardService
	Policies       *service.PolicyService
	APIKeys        *service.APIKeyService
	Exporter       *service.ExportService
	HistoryExports *service.HistoryExportService
	ExportQueue    *jobs.Queue

	closers []func() error
}

// Build wires every component described by cfg. The caller owns Close.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}
	validate := validator.New()

	c.Metrics = service.NewMetricsService()
	c.Hub = realtime.NewHub(cfg.Notifications.BufferSize, logger.Named("realtime"))
	c.Notifications = service.NewNotificationService(cfg.Notifications.BufferSize, c.Hub, c.Metrics, logger)

	var redisClient *redis.Client
	needsRedis := cfg.Session.SlotBackend == config.SlotBackendRedis || cfg.Dashboard.CacheEnabled
	if needsRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			if cfg.Session.SlotBackend == config.SlotBackendRedis {
				return nil, fmt.Errorf("connect redis: %w", err)
			}
			logger.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			redisClient = client
			c.closers = append(c.closers, client.Close)
		}
	}

	slot, err := c.buildSlot(ctx, redisClient)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Sessions, err = service.NewSessionService(slot, c.Notifications, validate, logger.Named("session"), service.SessionConfig{
		DemoEmail:        cfg.Auth.DemoEmail,
		DemoPassword:     cfg.Auth.DemoPassword,
		SimulatedLatency: cfg.Auth.SimulatedLatency,
		TokenSecret:      cfg.JWT.Secret,
		TokenExpiry:      cfg.JWT.Expiration,
		Issuer:           cfg.JWT.Issuer,
	})
	if err != nil {
		c.Close()
		return nil, err
	}

	seed, err := c.loadContent(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Content = repository.NewContentRepository(seed)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient)
	}
	cacheSvc := service.NewCacheService(cacheRepo, c.Metrics, cfg.Dashboard.CacheTTL, logger, cfg.Dashboard.CacheEnabled)
	c.Dashboard = service.NewDashboardService(c.Content, cacheSvc, cfg.Dashboard.CacheTTL, logger)

	c.Decisions = service.NewDecisionService(c.Content, c.Notifications, c.Metrics, logger.Named("decision"))
	c.Reviews = service.NewReviewService(c.Content, c.Decisions, c.Notifications, c.Dashboard, c.Metrics, logger.Named("review"))
	c.History = service.NewHistoryService(c.Content, validate, logger, cfg.History.PageSize)
	c.Policies = service.NewPolicyService(repository.NewPolicyRepository(fixtures.Policies()), c.Notifications, logger)
	c.APIKeys = service.NewAPIKeyService(repository.NewAPIKeyRepository(fixtures.APIKeys()), c.Notifications, validate, logger)

	if err := c.buildExports(validate); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) buildSlot(ctx context.Context, client *redis.Client) (service.SessionSlot, error) {
	switch c.Config.Session.SlotBackend {
	case config.SlotBackendRedis:
		return repository.NewRedisSessionSlot(client, c.Config.Session.SlotKey), nil
	case config.SlotBackendMemory:
		return repository.NewMemorySessionSlot(), nil
	default:
		db, err := database.NewSQLite(ctx, c.Config.Session.SlotPath)
		if err != nil {
			return nil, fmt.Errorf("open session slot: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		return repository.NewSQLiteSessionSlot(db, c.Config.Session.SlotKey), nil
	}
}

func (c *Container) loadContent(ctx context.Context) ([]models.ContentItem, error) {
	switch c.Config.Content.Source {
	case config.ContentSourceYAML:
		return repository.LoadContentYAML(c.Config.Content.FixturePath)
	case config.ContentSourcePostgres:
		db, err := database.NewPostgres(ctx, c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer func(db *sqlx.DB) { _ = db.Close() }(db)
		return repository.NewContentSeedRepository(db).Load(ctx)
	default:
		return fixtures.Content(), nil
	}
}

func (c *Container) buildExports(validate *validator.Validate) error {
	cfg := c.Config.Exports
	if !cfg.Enabled {
		return nil
	}
	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return err
	}
	signer := storage.NewSignedURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL)
	c.Exporter = service.NewExportService(store, signer, service.ExportConfig{
		APIPrefix: c.Config.APIPrefix,
		ResultTTL: cfg.SignedURLTTL,
	}, c.Logger.Named("export"), nil, nil)

	repo := repository.NewExportJobRepository()
	worker := service.NewHistoryExportWorker(repo, c.History, c.Exporter, c.Notifications, c.Metrics, c.Logger.Named("export"))
	c.ExportQueue = jobs.NewQueue("history-exports", worker.Handle, jobs.QueueConfig{
		Workers:     cfg.WorkerConcurrency,
		MaxRetries:  cfg.WorkerRetries,
		OnExhausted: worker.MarkFailed,
		Logger:      c.Logger,
	})
	c.HistoryExports = service.NewHistoryExportService(repo, c.ExportQueue, c.Exporter, c.Metrics, validate, c.Logger.Named("export"), service.HistoryExportConfig{
		ResultTTL:       cfg.SignedURLTTL,
		CleanupInterval: cfg.CleanupInterval,
	})
	return nil
}

// Close releases database and cache connections.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
