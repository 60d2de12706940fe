package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

// Navigation targets reported after session transitions.
const (
	RedirectDashboard = "/dashboard"
	RedirectHome      = "/"
	RedirectSignIn    = "/signin"
)

const termsRequiredMessage = "You must agree to the terms and conditions"

// SessionSlot persists the signed-in identity between process restarts.
type SessionSlot interface {
	Load(ctx context.Context) (*models.Identity, error)
	Save(ctx context.Context, identity models.Identity) error
	Clear(ctx context.Context) error
}

// SessionConfig defines the demo credential and token settings.
type SessionConfig struct {
	DemoEmail        string
	DemoPassword     string
	SimulatedLatency time.Duration
	TokenSecret      string
	TokenExpiry      time.Duration
	Issuer           string
}

// SessionOption customises a SessionService.
type SessionOption func(*SessionService)

// WithSessionSleeper replaces the simulated latency wait.
func WithSessionSleeper(sleep func(time.Duration)) SessionOption {
	return func(s *SessionService) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithSessionClock overrides the token clock.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		if now != nil {
			s.now = now
		}
	}
}

// SessionService owns the single operator session of the process.
type SessionService struct {
	slot      SessionSlot
	notifier  Notifier
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
	hash      []byte
	sleep     func(time.Duration)
	now       func() time.Time

	mu       sync.RWMutex
	state    models.SessionState
	user     *models.Identity
	inFlight atomic.Bool
}

// NewSessionService constructs a session store in the loading state.
func NewSessionService(slot SessionSlot, notifier Notifier, validate *validator.Validate, logger *zap.Logger, config SessionConfig, opts ...SessionOption) (*SessionService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	s := &SessionService{
		slot:      slot,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
		config:    config,
		hash:      hash,
		sleep:     time.Sleep,
		now:       time.Now,
		state:     models.SessionLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Restore reads the slot once and leaves the loading state.
func (s *SessionService) Restore(ctx context.Context) models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != models.SessionLoading {
		return s.snapshotLocked()
	}

	identity, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Warn("session slot unreadable, starting anonymous", zap.Error(err))
		if errors.Is(err, repository.ErrCorruptSlot) {
			if clearErr := s.slot.Clear(context.WithoutCancel(ctx)); clearErr != nil {
				s.logger.Warn("failed to clear session slot", zap.Error(clearErr))
			}
		}
		identity = nil
	}
	if identity != nil {
		s.state = models.SessionAuthenticated
		s.user = identity
		s.logger.Info("session restored", zap.String("user_id", identity.ID))
	} else {
		s.state = models.SessionAnonymous
		s.user = nil
	}
	return s.snapshotLocked()
}

// Snapshot returns the current session state.
func (s *SessionService) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *SessionService) snapshotLocked() models.SessionSnapshot {
	snap := models.SessionSnapshot{State: s.state}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}

// Login checks the demo credential and persists the identity on success.
func (s *SessionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, appErrors.ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	// The caller going away does not abort a submission already underway.
	ctx = context.WithoutCancel(ctx)
	s.sleep(s.config.SimulatedLatency)

	if req.Email != s.config.DemoEmail || bcrypt.CompareHashAndPassword(s.hash, []byte(req.Password)) != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		s.notify(ctx, models.Notification{
			Kind:        models.KindLoginFailed,
			Title:       "Login failed",
			Description: "Invalid credentials",
			Variant:     models.VariantDestructive,
		})
		return nil, appErrors.ErrInvalidCredentials
	}

	identity := models.Identity{ID: "1", Email: s.config.DemoEmail, Name: "Admin User", Role: models.RoleAdmin}
	resp, err := s.establish(ctx, identity)
	if err != nil {
		s.notify(ctx, models.Notification{
			Kind:        models.KindLoginFailed,
			Title:       "Login failed",
			Description: "Please check your credentials and try again",
			Variant:     models.VariantDestructive,
		})
		return nil, err
	}
	s.notify(ctx, models.Notification{
		Kind:        models.KindLogin,
		Title:       "Welcome back!",
		Description: "You've successfully logged in.",
	})
	return resp, nil
}

// Signup creates a moderator identity. The terms agreement is checked before
// anything else happens.
func (s *SessionService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if !req.AgreeToTerms {
		return nil, appErrors.Clone(appErrors.ErrValidation, termsRequiredMessage)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, appErrors.ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	ctx = context.WithoutCancel(ctx)
	s.sleep(s.config.SimulatedLatency)

	identity := models.Identity{ID: "2", Email: req.Email, Name: req.Name, Role: models.RoleModerator}
	resp, err := s.establish(ctx, identity)
	if err != nil {
		s.notify(ctx, models.Notification{
			Kind:        models.KindSignupFailed,
			Title:       "Signup failed",
			Description: "Please try again later",
			Variant:     models.VariantDestructive,
		})
		return nil, err
	}
	s.notify(ctx, models.Notification{
		Kind:        models.KindSignup,
		Title:       "Account created!",
		Description: "You've successfully signed up.",
	})
	return resp, nil
}

// establish writes the slot, then commits the in-memory session.
func (s *SessionService) establish(ctx context.Context, identity models.Identity) (*dto.AuthResponse, error) {
	token, err := s.generateToken(identity)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	if err := s.slot.Save(ctx, identity); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	s.mu.Lock()
	s.state = models.SessionAuthenticated
	user := identity
	s.user = &user
	s.mu.Unlock()

	s.logger.Info("session established", zap.String("user_id", identity.ID), zap.String("role", string(identity.Role)))
	return &dto.AuthResponse{
		User:        identity,
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		Redirect:    RedirectDashboard,
	}, nil
}

// Logout clears the slot and the in-memory session.
func (s *SessionService) Logout(ctx context.Context) dto.LogoutResponse {
	ctx = context.WithoutCancel(ctx)
	if err := s.slot.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session slot", zap.Error(err))
	}

	s.mu.Lock()
	s.state = models.SessionAnonymous
	s.user = nil
	s.mu.Unlock()

	s.notify(ctx, models.Notification{
		Kind:        models.KindLogout,
		Title:       "Logged out",
		Description: "You've been successfully logged out.",
	})
	return dto.LogoutResponse{Redirect: RedirectHome}
}

// Authorize checks the session for a protected request. An empty bearer is
// accepted while authenticated; a supplied one must belong to the session user.
func (s *SessionService) Authorize(bearer string) (*models.Identity, error) {
	snap := s.Snapshot()
	switch snap.State {
	case models.SessionLoading:
		return nil, appErrors.ErrSessionLoading
	case models.SessionAnonymous:
		return nil, appErrors.ErrUnauthorized
	}
	if bearer != "" {
		claims, err := s.ValidateToken(bearer)
		if err != nil {
			return nil, err
		}
		if claims.UserID != snap.User.ID {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token does not belong to the current session")
		}
	}
	return snap.User, nil
}

// ValidateToken parses and validates a bearer token returning the claims.
func (s *SessionService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *SessionService) generateToken(identity models.Identity) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.JWTClaims{
		UserID: identity.ID,
		Role:   identity.Role,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
}

func (s *SessionService) notify(ctx context.Context, n models.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

// PasswordStrength scores a password from 0 to 5, one point each for length of
// at least eight, an upper case letter, a lower case letter, a digit and any
// other character.
func PasswordStrength(password string) dto.PasswordStrengthResponse {
	if password == "" {
		return dto.PasswordStrengthResponse{}
	}
	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	score := 0
	for _, ok := range []bool{utf8.RuneCountInString(password) >= 8, upper, lower, digit, other} {
		if ok {
			score++
		}
	}

	label := "Strong"
	switch {
	case score == 0:
		label = ""
	case score <= 2:
		label = "Weak"
	case score <= 4:
		label = "Good"
	}
	return dto.PasswordStrengthResponse{Score: score, Label: label}
}
