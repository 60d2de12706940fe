package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid download token")
	ErrTokenExpired = errors.New("download token expired")
)

// Ticket is the content of a signed download token.
type Ticket struct {
	JobID     string    `json:"j"`
	Path      string    `json:"p"`
	ExpiresAt time.Time `json:"e"`
}

// SignedURLSigner issues and verifies HMAC-SHA256 download tokens of the form
// base64url(ticket) "." base64url(mac).
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token granting access to relPath for the signer's TTL.
func (s *SignedURLSigner) Sign(jobID, relPath string) (string, Ticket, error) {
	if jobID == "" || relPath == "" {
		return "", Ticket{}, errors.New("job id and path required")
	}
	if len(s.secret) == 0 {
		return "", Ticket{}, errors.New("signing secret missing")
	}
	ticket := Ticket{JobID: jobID, Path: relPath, ExpiresAt: s.now().Add(s.ttl).UTC().Truncate(time.Second)}
	raw, err := json.Marshal(ticket)
	if err != nil {
		return "", Ticket{}, err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + s.mac(payload), ticket, nil
}

// Verify checks the signature and expiry and returns the embedded ticket.
func (s *SignedURLSigner) Verify(token string) (Ticket, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return Ticket{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.mac(payload)), []byte(sig)) {
		return Ticket{}, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Ticket{}, ErrInvalidToken
	}
	var ticket Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return Ticket{}, ErrInvalidToken
	}
	if s.now().After(ticket.ExpiresAt) {
		return ticket, ErrTokenExpired
	}
	return ticket, nil
}

func (s *SignedURLSigner) mac(payload string) string {
	m := hmac.New(sha256.New, s.secret)
	_, _ = m.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(m.Sum(nil))
}
