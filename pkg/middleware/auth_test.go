package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirshak001/JEWEL/pkg/auth"
	"github.com/shirshak001/JEWEL/pkg/middleware"
	"github.com/shirshak001/JEWEL/pkg/session"
)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (m *memKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type tickClock struct{ now time.Time }

func (c *tickClock) Now() time.Time { return c.now }

func authedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/session", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthRejectsMissingToken(t *testing.T) {
	store := session.NewStoreWith(&memKV{data: map[string][]byte{}}, time.Hour, &tickClock{now: time.Now()})
	h := middleware.Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBadToken(t *testing.T) {
	store := session.NewStoreWith(&memKV{data: map[string][]byte{}}, time.Hour, &tickClock{now: time.Now()})
	h := middleware.Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, "garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	clock := &tickClock{now: time.Now()}
	store := session.NewStoreWith(&memKV{data: map[string][]byte{}}, time.Hour, clock)

	sess, err := store.Create(context.Background(), "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)
	token, err := auth.GenerateToken("u1", "admin", sess.ID)
	require.NoError(t, err)

	var sawUser, sawRole string
	h := middleware.Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUser, _ = middleware.UserIDFromCtx(r)
		sawRole, _ = middleware.RoleFromCtx(r)
		got, ok := middleware.SessionFromCtx(r)
		assert.True(t, ok)
		assert.Equal(t, sess.ID, got.ID)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", sawUser)
	assert.Equal(t, "admin", sawRole)
}

func TestAuthRejectsExpiredSessionDespiteValidJWT(t *testing.T) {
	clock := &tickClock{now: time.Now()}
	store := session.NewStoreWith(&memKV{data: map[string][]byte{}}, time.Hour, clock)

	sess, err := store.Create(context.Background(), "u1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)
	token, err := auth.GenerateToken("u1", "admin", sess.ID)
	require.NoError(t, err)

	// The JWT is good for 24h, but the sliding session has lapsed.
	clock.now = clock.now.Add(2 * time.Hour)

	h := middleware.Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", middleware.BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", middleware.BearerToken(req))
}
