// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"context"
	"time"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/internal/catalog"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/cache"
	"github.com/shirshak001/JEWEL/pkg/collection"
	"github.com/shirshak001/JEWEL/pkg/logger"
)

const (
	catalogSnapshotKey = "catalog:snapshot"
	catalogSnapshotTTL = 10 * time.Minute
)

// CatalogService answers storefront browse queries. MongoDB is the source
// of truth; a Redis snapshot of the visible catalogue doubles as a warm
// cache and as a degraded-mode fallback when MongoDB is unreachable.
type CatalogService struct {
	products *repositories.ProductRepository
}

func NewCatalogService(products *repositories.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List runs a public catalog query. On a MongoDB failure the query is
// replayed in memory over the cached snapshot with identical semantics; if
// neither source can serve, the browse surface is down.
func (s *CatalogService) List(ctx context.Context, q catalog.Query) (catalog.Result, error) {
	q.IncludeInactive = false
	q.StockStatus = ""

	res, err := s.products.List(ctx, q)
	if err == nil {
		return res, nil
	}

	var snapshot []models.Product
	if cache.Get(ctx, catalogSnapshotKey, &snapshot) {
		logger.WithCtx(ctx).Warn("catalog: serving from snapshot", "error", err)
		return catalog.Apply(snapshot, q), nil
	}
	return catalog.Result{}, apperr.ErrUnavailable
}

// Get returns one storefront product by slug, falling back to the snapshot.
func (s *CatalogService) Get(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.products.FindBySlug(ctx, slug, true)
	if err == nil || err == apperr.ErrNotFound {
		return p, err
	}

	var snapshot []models.Product
	if cache.Get(ctx, catalogSnapshotKey, &snapshot) {
		if found, ok := collection.First(snapshot, func(p models.Product) bool { return p.Slug == slug }); ok {
			return &found, nil
		}
		return nil, apperr.ErrNotFound
	}
	return nil, apperr.ErrUnavailable
}

// Related returns products that share a category with the given one.
func (s *CatalogService) Related(ctx context.Context, id string, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 4
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.Related(ctx, p, limit)
}

// Featured returns the flagged storefront picks.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 6
	}
	return s.products.Featured(ctx, limit)
}

// RefreshSnapshot rebuilds the Redis catalogue snapshot. Runs at boot and
// after every product or stock mutation.
func (s *CatalogService) RefreshSnapshot(ctx context.Context) {
	items, err := s.products.AllActive(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("catalog: snapshot refresh failed", "error", err)
		return
	}
	if err := cache.Set(ctx, catalogSnapshotKey, items, catalogSnapshotTTL); err != nil {
		logger.WithCtx(ctx).Warn("catalog: snapshot store failed", "error", err)
	}
}

// InvalidateSnapshot drops the cached catalogue.
func (s *CatalogService) InvalidateSnapshot(ctx context.Context) {
	_ = cache.Forget(ctx, catalogSnapshotKey)
}
