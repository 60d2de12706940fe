package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

type slotStub struct {
	mu      sync.Mutex
	value   *models.Identity
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (s *slotStub) Load(ctx context.Context) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.value, nil
}

func (s *slotStub) Save(ctx context.Context, identity models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.value = &identity
	return nil
}

func (s *slotStub) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.value = nil
	return nil
}

type notifierStub struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (n *notifierStub) Notify(ctx context.Context, note models.Notification) models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
	return note
}

func (n *notifierStub) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, note := range n.sent {
		out = append(out, note.Title)
	}
	return out
}

func (n *notifierStub) last() models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

var testSessionConfig = SessionConfig{
	DemoEmail:    "admin@example.com",
	DemoPassword: "password",
	TokenSecret:  "test-secret",
	TokenExpiry:  time.Hour,
	Issuer:       "contentguard",
}

func newSessionService(t *testing.T, slot SessionSlot, notifier Notifier, opts ...SessionOption) *SessionService {
	t.Helper()
	opts = append([]SessionOption{WithSessionSleeper(func(time.Duration) {})}, opts...)
	svc, err := NewSessionService(slot, notifier, nil, nil, testSessionConfig, opts...)
	require.NoError(t, err)
	return svc
}

func TestSessionRestore(t *testing.T) {
	admin := models.Identity{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin}

	t.Run("authenticated from slot", func(t *testing.T) {
		svc := newSessionService(t, &slotStub{value: &admin}, nil)
		assert.Equal(t, models.SessionLoading, svc.Snapshot().State)

		snap := svc.Restore(context.Background())
		assert.Equal(t, models.SessionAuthenticated, snap.State)
		require.NotNil(t, snap.User)
		assert.Equal(t, admin, *snap.User)
	})

	t.Run("empty slot", func(t *testing.T) {
		svc := newSessionService(t, &slotStub{}, nil)
		snap := svc.Restore(context.Background())
		assert.Equal(t, models.SessionAnonymous, snap.State)
		assert.Nil(t, snap.User)
	})

	t.Run("corrupt slot is cleared", func(t *testing.T) {
		slot := &slotStub{loadErr: repository.ErrCorruptSlot}
		svc := newSessionService(t, slot, nil)
		snap := svc.Restore(context.Background())
		assert.Equal(t, models.SessionAnonymous, snap.State)
		assert.Equal(t, 1, slot.clears)
	})

	t.Run("reads once", func(t *testing.T) {
		slot := &slotStub{}
		svc := newSessionService(t, slot, nil)
		svc.Restore(context.Background())
		slot.value = &admin
		assert.Equal(t, models.SessionAnonymous, svc.Restore(context.Background()).State)
	})
}

func TestSessionLoginSuccess(t *testing.T) {
	slot := &slotStub{}
	notifier := &notifierStub{}
	var slept time.Duration
	svc := newSessionService(t, slot, notifier, WithSessionSleeper(func(d time.Duration) { slept = d }))
	svc.config.SimulatedLatency = time.Second
	svc.Restore(context.Background())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.NoError(t, err)

	assert.Equal(t, time.Second, slept)
	assert.Equal(t, models.Identity{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin}, resp.User)
	assert.Equal(t, RedirectDashboard, resp.Redirect)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	assert.Equal(t, models.SessionAuthenticated, svc.Snapshot().State)
	require.NotNil(t, slot.value)
	assert.Equal(t, "1", slot.value.ID)
	assert.Equal(t, []string{"Welcome back!"}, notifier.titles())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSessionLoginInvalidCredentials(t *testing.T) {
	cases := []dto.LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "someone@example.com", Password: "password"},
		{},
	}
	for _, req := range cases {
		slot := &slotStub{}
		notifier := &notifierStub{}
		svc := newSessionService(t, slot, notifier)
		svc.Restore(context.Background())

		resp, err := svc.Login(context.Background(), req)
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials.Code))
		assert.Equal(t, models.SessionAnonymous, svc.Snapshot().State)
		assert.Zero(t, slot.saves)

		last := notifier.last()
		assert.Equal(t, "Login failed", last.Title)
		assert.Equal(t, models.VariantDestructive, last.Variant)
	}
}

func TestSessionLoginSlotFailureLeavesSessionUntouched(t *testing.T) {
	slot := &slotStub{saveErr: errors.New("disk full")}
	notifier := &notifierStub{}
	svc := newSessionService(t, slot, notifier)
	svc.Restore(context.Background())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "password"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInternal.Code))
	assert.Equal(t, models.SessionAnonymous, svc.Snapshot().State)
	assert.Equal(t, []string{"Login failed"}, notifier.titles())
}

func TestSessionSubmitInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	notifier := &notifierStub{}
	svc := newSessionService(t, &slotStub{}, notifier, WithSessionSleeper(func(time.Duration) {
		close(entered)
		<-release
	}))
	svc.Restore(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "password"})
		done <- err
	}()
	<-entered

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "password"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrSubmitInFlight.Code))
	_, err = svc.Signup(context.Background(), dto.SignupRequest{Name: "Mod", Email: "mod@example.com", Password: "pw", AgreeToTerms: true})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrSubmitInFlight.Code))
	assert.Equal(t, models.SessionAnonymous, svc.Snapshot().State)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, models.SessionAuthenticated, svc.Snapshot().State)
	assert.Equal(t, []string{"Welcome back!"}, notifier.titles())
}

func TestSessionLoginIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newSessionService(t, &slotStub{}, nil, WithSessionSleeper(func(time.Duration) { cancel() }))
	svc.Restore(context.Background())

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, models.SessionAuthenticated, svc.Snapshot().State)
}

func TestSessionSignup(t *testing.T) {
	t.Run("requires terms", func(t *testing.T) {
		slot := &slotStub{}
		notifier := &notifierStub{}
		svc := newSessionService(t, slot, notifier)
		svc.Restore(context.Background())

		_, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "Mod", Email: "mod@example.com", Password: "pw"})
		require.Error(t, err)
		assert.Equal(t, termsRequiredMessage, appErrors.FromError(err).Message)
		assert.Equal(t, models.SessionAnonymous, svc.Snapshot().State)
		assert.Zero(t, slot.saves)
		assert.Empty(t, notifier.titles())
	})

	t.Run("creates moderator", func(t *testing.T) {
		slot := &slotStub{}
		notifier := &notifierStub{}
		svc := newSessionService(t, slot, notifier)
		svc.Restore(context.Background())

		resp, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "Mod", Email: "mod@example.com", Password: "pw", AgreeToTerms: true})
		require.NoError(t, err)
		assert.Equal(t, models.Identity{ID: "2", Email: "mod@example.com", Name: "Mod", Role: models.RoleModerator}, resp.User)
		assert.Equal(t, RedirectDashboard, resp.Redirect)
		assert.Equal(t, "2", slot.value.ID)
		assert.Equal(t, []string{"Account created!"}, notifier.titles())
	})
}

func TestSessionLogout(t *testing.T) {
	admin := models.Identity{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin}
	slot := &slotStub{value: &admin}
	notifier := &notifierStub{}
	svc := newSessionService(t, slot, notifier)
	svc.Restore(context.Background())

	resp := svc.Logout(context.Background())
	assert.Equal(t, RedirectHome, resp.Redirect)
	assert.Equal(t, models.SessionAnonymous, svc.Snapshot().State)
	assert.Nil(t, slot.value)
	assert.Equal(t, []string{"Logged out"}, notifier.titles())
}

func TestSessionAuthorize(t *testing.T) {
	svc := newSessionService(t, &slotStub{}, nil)

	_, err := svc.Authorize("")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrSessionLoading.Code))

	svc.Restore(context.Background())
	_, err = svc.Authorize("")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.NoError(t, err)

	user, err := svc.Authorize("")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)

	user, err = svc.Authorize(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)

	_, err = svc.Authorize("garbage")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	other, err := svc.generateToken(models.Identity{ID: "2", Role: models.RoleModerator})
	require.NoError(t, err)
	_, err = svc.Authorize(other)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))
}

func TestValidateTokenExpired(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newSessionService(t, &slotStub{}, nil, WithSessionClock(func() time.Time { return now }))
	token, err := svc.generateToken(models.Identity{ID: "1", Role: models.RoleAdmin})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.ValidateToken(token)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, ""},
		{"abc", 1, "Weak"},
		{"abcdefgh", 2, "Weak"},
		{"Abcdefgh", 3, "Good"},
		{"Abcdefg1", 4, "Good"},
		{"Abcdef1!", 5, "Strong"},
	}
	for _, tc := range cases {
		got := PasswordStrength(tc.password)
		assert.Equal(t, tc.score, got.Score, tc.password)
		assert.Equal(t, tc.label, got.Label, tc.password)
	}
}
