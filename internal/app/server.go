package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/contentguard-api/internal/handler"
	"github.com/noah-isme/contentguard-api/internal/middleware"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/pkg/config"
	"github.com/noah-isme/contentguard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/contentguard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/contentguard-api/pkg/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

// Router builds the gin engine with every console route.
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(c.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(c.Metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(c.Metrics, c.Sessions)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(c.Sessions)
	reviewHandler := handler.NewReviewHandler(c.Reviews)
	historyHandler := handler.NewHistoryHandler(c.History, nil)
	if c.HistoryExports != nil {
		historyHandler = handler.NewHistoryHandler(c.History, c.HistoryExports)
	}
	dashboardHandler := handler.NewDashboardHandler(c.Dashboard)
	policyHandler := handler.NewPolicyHandler(c.Policies)
	apiKeyHandler := handler.NewAPIKeyHandler(c.APIKeys)
	notificationHandler := handler.NewNotificationHandler(c.Notifications, c.Hub, c.Logger)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/password-strength", authHandler.PasswordStrength)
	auth.GET("/session", authHandler.Session)

	api.GET("/history/exports/download/:token", historyHandler.Download)

	protected := api.Group("", middleware.SessionGate(c.Sessions))
	protected.POST("/auth/logout", authHandler.Logout)

	review := protected.Group("/review")
	review.GET("", reviewHandler.View)
	review.PUT("/filters", reviewHandler.SetFilters)
	review.PUT("/mode", reviewHandler.SetMode)
	review.POST("/next", reviewHandler.Next)
	review.POST("/previous", reviewHandler.Previous)
	review.POST("/items/:id/review", reviewHandler.Review)
	review.POST("/items/:id/approve", middleware.Audit(c.Logger, "approve", "content"), reviewHandler.Approve)
	review.POST("/items/:id/reject", middleware.Audit(c.Logger, "reject", "content"), reviewHandler.Reject)

	protected.GET("/history", historyHandler.List)
	protected.POST("/history/exports", historyHandler.CreateExport)
	protected.GET("/history/exports/:id", historyHandler.ExportStatus)

	protected.GET("/dashboard", dashboardHandler.Summary)

	protected.GET("/policies", policyHandler.List)
	adminPolicies := protected.Group("/policies", middleware.RequireRoles(models.RoleAdmin))
	adminPolicies.POST("", middleware.Audit(c.Logger, "create", "policy"), policyHandler.Create)
	adminPolicies.PUT("/:id", middleware.Audit(c.Logger, "update", "policy"), policyHandler.Update)
	adminPolicies.DELETE("/:id", middleware.Audit(c.Logger, "delete", "policy"), policyHandler.Delete)

	keys := protected.Group("/api-keys")
	keys.GET("", apiKeyHandler.List)
	keys.POST("", middleware.Audit(c.Logger, "create", "api_key"), apiKeyHandler.Create)
	keys.POST("/:id/toggle", middleware.Audit(c.Logger, "toggle", "api_key"), apiKeyHandler.Toggle)
	keys.POST("/:id/regenerate", middleware.Audit(c.Logger, "regenerate", "api_key"), apiKeyHandler.Regenerate)

	protected.GET("/notifications", notificationHandler.Recent)
	protected.GET("/notifications/stream", notificationHandler.Stream)

	return r
}

// Run restores the session, starts background workers and serves HTTP until
// ctx is cancelled, then shuts everything down.
func (c *Container) Run(ctx context.Context) error {
	snap := c.Sessions.Restore(ctx)
	c.Logger.Info("session restored", zap.String("state", string(snap.State)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Config.Port),
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Hub.Run(gctx)
		return nil
	})

	if c.ExportQueue != nil {
		c.ExportQueue.Start(gctx)
		c.HistoryExports.StartCleanup(gctx)
		g.Go(func() error {
			<-gctx.Done()
			c.ExportQueue.Stop()
			return nil
		})
	}

	g.Go(func() error {
		c.Logger.Sugar().Infow("server starting", "addr", srv.Addr, "env", c.Config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
