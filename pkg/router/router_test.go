package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirshak001/JEWEL/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutePathAndURL(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{slug}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/api/products/{slug}", path)

	url, err := r.URL("products.show", map[string]string{"slug": "gold-band"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/gold-band", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)

	_, err = r.URL("does.not.exist", nil)
	assert.Error(t, err)
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/stats/dashboard", "admin.stats.dashboard", ok)

	path, found := r.Path("admin.stats.dashboard")
	require.True(t, found)
	assert.Equal(t, "/api/admin/stats/dashboard", path)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats/dashboard", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(label string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, label)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("outer"))
	api.Get("/ping", "ping", ok, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", ok)
	r.Get("/a", "a.index", ok)
	r.Get("/b", "b.index", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, http.MethodPost, infos[2].Method)
}

func TestUnnamedRoutesAreNotRecorded(t *testing.T) {
	r := router.New()
	r.Get("/health", "", ok)
	assert.Empty(t, r.Routes())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
