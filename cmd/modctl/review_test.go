package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/pkg/config"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

type sessionStub struct {
	snapshot models.SessionSnapshot
	logins   []dto.LoginRequest
}

func (s *sessionStub) Restore(context.Context) models.SessionSnapshot {
	return s.snapshot
}

func (s *sessionStub) Login(_ context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	s.logins = append(s.logins, req)
	if req.Email != "admin@example.com" || req.Password != "password" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &dto.AuthResponse{User: models.Identity{ID: "1", Email: req.Email, Name: "Admin User"}}, nil
}

var demoAuth = config.AuthConfig{DemoEmail: "admin@example.com", DemoPassword: "password"}

func TestSignInKeepsRestoredSession(t *testing.T) {
	user := models.Identity{ID: "7", Name: "Restored"}
	stub := &sessionStub{snapshot: models.SessionSnapshot{State: models.SessionAuthenticated, User: &user}}

	operator, err := signIn(context.Background(), stub, demoAuth, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "7", operator.ID)
	assert.Empty(t, stub.logins)
}

func TestSignInAnonymousRequiresCredentials(t *testing.T) {
	stub := &sessionStub{snapshot: models.SessionSnapshot{State: models.SessionAnonymous}}

	_, err := signIn(context.Background(), stub, demoAuth, "", "", false)
	assert.ErrorIs(t, err, errNotSignedIn)
	assert.Empty(t, stub.logins)
}

func TestSignInExplicitCredentials(t *testing.T) {
	stub := &sessionStub{snapshot: models.SessionSnapshot{State: models.SessionAnonymous}}

	operator, err := signIn(context.Background(), stub, demoAuth, "admin@example.com", "password", false)
	require.NoError(t, err)
	assert.Equal(t, "1", operator.ID)

	_, err = signIn(context.Background(), stub, demoAuth, "admin@example.com", "wrong", false)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials.Code))
}

func TestSignInDemoFlag(t *testing.T) {
	stub := &sessionStub{snapshot: models.SessionSnapshot{State: models.SessionAnonymous}}

	operator, err := signIn(context.Background(), stub, demoAuth, "", "", true)
	require.NoError(t, err)
	assert.Equal(t, "Admin User", operator.Name)
	require.Len(t, stub.logins, 1)
	assert.Equal(t, dto.LoginRequest{Email: "admin@example.com", Password: "password"}, stub.logins[0])
}
