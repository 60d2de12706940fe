package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// ErrCorruptSlot is returned when the persisted identity cannot be decoded.
var ErrCorruptSlot = errors.New("session slot holds an unreadable identity")

func decodeIdentity(raw []byte) (*models.Identity, error) {
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrCorruptSlot)
	}
	return &identity, nil
}

// SQLiteSessionSlot keeps the signed-in identity in a local sqlite file.
type SQLiteSessionSlot struct {
	db  *sqlx.DB
	key string
	now func() time.Time
}

// NewSQLiteSessionSlot returns a slot stored under key in the session_slots table.
func NewSQLiteSessionSlot(db *sqlx.DB, key string) *SQLiteSessionSlot {
	return &SQLiteSessionSlot{db: db, key: key, now: time.Now}
}

// Load returns the stored identity, or nil when the slot is empty.
func (s *SQLiteSessionSlot) Load(ctx context.Context) (*models.Identity, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM session_slots WHERE slot_key = ?`, s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session slot: %w", err)
	}
	return decodeIdentity([]byte(raw))
}

// Save replaces the stored identity.
func (s *SQLiteSessionSlot) Save(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO session_slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(raw), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	return nil
}

// Clear removes the stored identity.
func (s *SQLiteSessionSlot) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_slots WHERE slot_key = ?`, s.key); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}

// RedisSessionSlot keeps the signed-in identity under a single redis key.
type RedisSessionSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSessionSlot returns a slot stored at key.
func NewRedisSessionSlot(client *redis.Client, key string) *RedisSessionSlot {
	return &RedisSessionSlot{client: client, key: key}
}

// Load returns the stored identity, or nil when the key is absent.
func (s *RedisSessionSlot) Load(ctx context.Context) (*models.Identity, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeIdentity(raw)
}

// Save replaces the stored identity. The slot does not expire.
func (s *RedisSessionSlot) Save(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear deletes the key.
func (s *RedisSessionSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

// MemorySessionSlot is a process-local slot; nothing survives a restart.
type MemorySessionSlot struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemorySessionSlot returns an empty slot.
func NewMemorySessionSlot() *MemorySessionSlot {
	return &MemorySessionSlot{}
}

func (s *MemorySessionSlot) Load(_ context.Context) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return nil, nil
	}
	return decodeIdentity(s.raw)
}

func (s *MemorySessionSlot) Save(_ context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionSlot) Clear(_ context.Context) error {
	s.mu.Lock()
	s.raw = nil
	s.mu.Unlock()
	return nil
}
