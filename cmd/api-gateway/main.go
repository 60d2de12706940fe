package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/noah-isme/contentguard-api/api/swagger"
	"github.com/noah-isme/contentguard-api/internal/app"
	"github.com/noah-isme/contentguard-api/pkg/config"
	"github.com/noah-isme/contentguard-api/pkg/logger"
)

// @title ContentGuard API
// @version 1.0.0
// @description Moderation console backend: review queue, decisions, history and exports
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.Build(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build application", "error", err)
	}
	defer container.Close() //nolint:errcheck

	if err := container.Run(ctx); err != nil {
		logr.Sugar().Errorw("server stopped with error", "error", err)
	}
}
