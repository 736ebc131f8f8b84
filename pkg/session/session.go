// Package session implements sliding-window admin sessions.
//
// A session stays alive as long as requests keep arriving within the idle
// window (one hour by default). Every successful Check refreshes the
// window; a gap longer than the window invalidates the session.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/cache"
)

// Session is the server-held login state referenced by the token's
// session_id claim.
type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Start    time.Time `json:"start"`
	LastSeen time.Time `json:"lastSeen"`
}

// Clock abstracts time.Now so the sliding window is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// KV is the key-value surface the store needs. pkg/cache satisfies it in
// production; tests plug in an in-memory map.
type KV interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// cacheKV adapts the package-level cache functions to KV.
type cacheKV struct{}

func (cacheKV) Get(ctx context.Context, key string, dest interface{}) bool {
	return cache.Get(ctx, key, dest)
}
func (cacheKV) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return cache.Set(ctx, key, value, ttl)
}
func (cacheKV) Del(ctx context.Context, keys ...string) error {
	return cache.Del(ctx, keys...)
}

// Store creates, checks and revokes sessions.
type Store struct {
	kv    KV
	ttl   time.Duration
	clock Clock
}

// NewStore returns a Store backed by Redis.
func NewStore(ttl time.Duration) *Store {
	return &Store{kv: cacheKV{}, ttl: ttl, clock: realClock{}}
}

// NewStoreWith returns a Store with an explicit backend and clock, used by
// tests.
func NewStoreWith(kv KV, ttl time.Duration, clock Clock) *Store {
	return &Store{kv: kv, ttl: ttl, clock: clock}
}

func key(id string) string { return "session:" + id }

// Create opens a fresh session and returns it. Each login gets its own
// session; there is no concurrent-session bookkeeping.
func (s *Store) Create(ctx context.Context, userID, email, name, role string) (*Session, error) {
	now := s.clock.Now()
	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Email:    email,
		Name:     name,
		Role:     role,
		Start:    now,
		LastSeen: now,
	}
	// Redis expiry is a backstop; the authoritative check compares
	// LastSeen against the clock so tests can drive time explicitly.
	if err := s.kv.Set(ctx, key(sess.ID), sess, s.ttl); err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	return sess, nil
}

// Check validates a session ID and slides its window. A session is live
// strictly inside the idle window; at or past the boundary it is deleted
// and ErrUnauthorized returned.
func (s *Store) Check(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperr.ErrUnauthorized
	}

	var sess Session
	if !s.kv.Get(ctx, key(id), &sess) {
		return nil, apperr.ErrUnauthorized
	}

	now := s.clock.Now()
	if now.Sub(sess.LastSeen) >= s.ttl {
		_ = s.kv.Del(ctx, key(id))
		return nil, apperr.ErrUnauthorized
	}

	sess.LastSeen = now
	if err := s.kv.Set(ctx, key(id), &sess, s.ttl); err != nil {
		return nil, fmt.Errorf("session: refresh: %w", err)
	}
	return &sess, nil
}

// Revoke deletes a session. Unknown IDs are not an error; logout is
// idempotent.
func (s *Store) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.kv.Del(ctx, key(id))
}
