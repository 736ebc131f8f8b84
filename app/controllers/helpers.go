// Package controllers holds the HTTP handlers. Controllers parse and
// validate input, call a service, and render the response envelope; no
// business rules live here.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shirshak001/JEWEL/internal/catalog"
)

// param returns a chi URL parameter.
func param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// queryInt parses an integer query value with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// queryFloat parses a float query value with a fallback.
func queryFloat(r *http.Request, name string, fallback float64) float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// catalogQuery builds a catalog query from the request's query string.
func catalogQuery(r *http.Request) catalog.Query {
	q := catalog.Query{
		Page:     queryInt(r, "page", catalog.DefaultPage),
		Limit:    queryInt(r, "limit", catalog.DefaultLimit),
		Category: r.URL.Query().Get("category"),
		MinPrice: queryFloat(r, "minPrice", 0),
		MaxPrice: queryFloat(r, "maxPrice", 0),
		Search:   r.URL.Query().Get("search"),
		SortBy:   r.URL.Query().Get("sortBy"),
	}
	q.Normalize()
	return q
}

// cartID extracts the client cart identifier.
func cartID(r *http.Request) string {
	return r.Header.Get("X-Cart-ID")
}
