package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/tui"
	"github.com/noah-isme/contentguard-api/pkg/config"
)

var errNotSignedIn = errors.New("not signed in: pass --email and --password, or --demo")

var (
	reviewEmail    string
	reviewPassword string
	reviewDemo     bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Open the terminal review queue",
	Long: `Open the pending moderation queue in the terminal.

The persisted operator session is restored first. When nobody is signed in
the operator must sign in with --email and --password, or pass --demo to use
the demo credentials from the environment.`,
	RunE: runReview,
}

func init() {
	flags := reviewCmd.Flags()
	flags.StringVar(&reviewEmail, "email", "", "operator email")
	flags.StringVar(&reviewPassword, "password", "", "operator password")
	flags.BoolVar(&reviewDemo, "demo", false, "sign in with the configured demo credentials")
	reviewCmd.MarkFlagsRequiredTogether("email", "password")
	reviewCmd.MarkFlagsMutuallyExclusive("email", "demo")
}

type sessionGate interface {
	Restore(ctx context.Context) models.SessionSnapshot
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

// signIn returns the restored operator, or signs in with the explicit
// credentials. Anonymous sessions never fall back to the demo pair on their own.
func signIn(ctx context.Context, sessions sessionGate, auth config.AuthConfig, email, password string, demo bool) (models.Identity, error) {
	snap := sessions.Restore(ctx)
	if snap.State == models.SessionAuthenticated && snap.User != nil {
		return *snap.User, nil
	}

	req := dto.LoginRequest{Email: email, Password: password}
	if demo {
		req = dto.LoginRequest{Email: auth.DemoEmail, Password: auth.DemoPassword}
	}
	if req.Email == "" || req.Password == "" {
		return models.Identity{}, errNotSignedIn
	}
	resp, err := sessions.Login(ctx, req)
	if err != nil {
		return models.Identity{}, fmt.Errorf("sign in: %w", err)
	}
	return resp.User, nil
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	container, logr, err := buildContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close() //nolint:errcheck
	defer logr.Sync()       //nolint:errcheck

	operator, err := signIn(ctx, container.Sessions, container.Config.Auth, reviewEmail, reviewPassword, reviewDemo)
	if err != nil {
		return err
	}
	logr.Info("review console started", zap.String("operator_id", operator.ID))

	program := tea.NewProgram(tui.New(ctx, container.Reviews, operator), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
