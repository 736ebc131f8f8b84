package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/session"
)

// fakeKV is an in-memory KV; values round-trip through JSON like Redis.
type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string][]byte{}} }

func (f *fakeKV) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

// fakeClock lets tests drive the sliding window explicitly.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newStore(ttl time.Duration) (*session.Store, *fakeKV, *fakeClock) {
	kv := newFakeKV()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return session.NewStoreWith(kv, ttl, clock), kv, clock
}

func TestCheckSlidesWindow(t *testing.T) {
	store, _, clock := newStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)

	// Just inside the window: still valid, and the window restarts.
	clock.now = clock.now.Add(59*time.Minute + 59*time.Second)
	refreshed, err := store.Check(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.now, refreshed.LastSeen)

	// Another near-full window after the refresh is still fine.
	clock.now = clock.now.Add(59 * time.Minute)
	_, err = store.Check(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestCheckExactlyAtTTLExpires(t *testing.T) {
	store, kv, clock := newStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)

	// An idle gap equal to the window is already too long.
	clock.now = clock.now.Add(time.Hour)
	_, err = store.Check(ctx, sess.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Empty(t, kv.data)
}

func TestCheckPastTTLInvalidatesSession(t *testing.T) {
	store, kv, clock := newStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour + time.Second)
	_, err = store.Check(ctx, sess.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	// The session is gone, so even rolling the clock back cannot revive it.
	clock.now = clock.now.Add(-time.Hour)
	_, err = store.Check(ctx, sess.ID)
	assert.Error(t, err)
	assert.Empty(t, kv.data)
}

func TestCheckUnknownSession(t *testing.T) {
	store, _, _ := newStore(time.Hour)
	_, err := store.Check(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = store.Check(context.Background(), "")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

// downKV refuses writes, as the Redis-backed store does when the server
// is unreachable.
type downKV struct{}

func (downKV) Get(context.Context, string, interface{}) bool { return false }
func (downKV) Set(context.Context, string, interface{}, time.Duration) error {
	return apperr.ErrUnavailable
}
func (downKV) Del(context.Context, ...string) error { return nil }

func TestCreateFailsWhenBackendIsDown(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := session.NewStoreWith(downKV{}, time.Hour, clock)

	// A login must not hand out a session that no later Check can find.
	_, err := store.Create(context.Background(), "u1", "admin@example.com", "Admin", "admin")
	assert.True(t, errors.Is(err, apperr.ErrUnavailable))
}

func TestRevokeIsIdempotent(t *testing.T) {
	store, _, _ := newStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, sess.ID))
	require.NoError(t, store.Revoke(ctx, sess.ID))
	require.NoError(t, store.Revoke(ctx, ""))

	_, err = store.Check(ctx, sess.ID)
	assert.Error(t, err)
}
