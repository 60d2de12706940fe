// Command modctl is the operator console for ContentGuard: a terminal review
// queue and offline history exports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/app"
	"github.com/noah-isme/contentguard-api/pkg/config"
	"github.com/noah-isme/contentguard-api/pkg/logger"
)

var (
	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "modctl",
	Short:         "ContentGuard operator console",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "modctl.log", "where console logs are written")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (defaults to LOG_LEVEL)")
	rootCmd.AddCommand(reviewCmd, historyCmd)
}

// buildContainer loads configuration and wires the console without the
// asynchronous export pipeline.
func buildContainer(ctx context.Context) (*app.Container, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Exports.Enabled = false

	level := logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	logr, err := logger.NewCLI(level, logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	container, err := app.Build(ctx, cfg, logr)
	if err != nil {
		_ = logr.Sync()
		return nil, nil, err
	}
	return container, logr, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "modctl:", err)
		stop()
		os.Exit(1)
	}
}
