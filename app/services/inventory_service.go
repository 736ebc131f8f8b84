package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/internal/catalog"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/event"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/metrics"
)

// InventoryService is the admin-side product management layer.
type InventoryService struct {
	products *repositories.ProductRepository
	catalog  *CatalogService
}

func NewInventoryService(products *repositories.ProductRepository, catalog *CatalogService) *InventoryService {
	return &InventoryService{products: products, catalog: catalog}
}

// List runs an admin catalog query: inactive and out-of-stock products
// included, with optional stock-state filtering.
func (s *InventoryService) List(ctx context.Context, q catalog.Query) (catalog.Result, error) {
	q.IncludeInactive = true
	return s.products.List(ctx, q)
}

// Get returns any product by ID, visible or not.
func (s *InventoryService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create stores a new product. On a slug collision the save is retried
// once with a "-2" suffix; a second collision surfaces as a conflict.
func (s *InventoryService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.Normalize()
	if errs := p.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	err := s.products.Insert(ctx, p)
	if errors.Is(err, apperr.ErrConflict) {
		p.Slug = p.Slug + "-2"
		err = s.products.Insert(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	s.catalog.RefreshSnapshot(ctx)
	event.FireAsync(event.ProductSaved, p)
	logger.WithCtx(ctx).Info("product created", "slug", p.Slug, "sku", p.Inventory.SKU)
	return p, nil
}

// Update re-derives the slug when the title changed and replaces the
// stored document.
func (s *InventoryService) Update(ctx context.Context, id string, apply func(*models.Product)) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldTitle := p.Title
	apply(p)
	if p.Title != oldTitle {
		p.Slug = models.Slugify(p.Title)
	}
	p.Normalize()
	if errs := p.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.catalog.RefreshSnapshot(ctx)
	event.FireAsync(event.ProductSaved, p)
	return p, nil
}

// Delete removes a product permanently.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.RefreshSnapshot(ctx)
	return nil
}

// AdjustStock applies an increase/decrease/set operation. Decreasing below
// zero is rejected at the repository. Threshold crossings raise alerts.
func (s *InventoryService) AdjustStock(ctx context.Context, id, operation string, amount int) (*models.Product, error) {
	if amount < 0 {
		return nil, apperr.Validation(map[string]string{"amount": "must not be negative"})
	}

	p, err := s.products.AdjustStock(ctx, id, operation, amount)
	if err != nil {
		return nil, err
	}

	alert := StockAlert{
		ProductID: p.ID.Hex(),
		Title:     p.Title,
		SKU:       p.Inventory.SKU,
		Stock:     p.Inventory.Stock,
		State:     p.StockState(),
	}
	switch alert.State {
	case models.OutOfStock:
		event.FireAsync(event.StockOut, alert)
	case models.LowStock:
		event.FireAsync(event.StockLow, alert)
	}

	if n, err := s.products.CountLowStock(ctx); err == nil {
		metrics.SetLowStockCount(int(n))
	}
	s.catalog.RefreshSnapshot(ctx)
	return p, nil
}

// LowStock returns the alert list for the admin dashboard.
func (s *InventoryService) LowStock(ctx context.Context) ([]models.Product, error) {
	return s.products.LowStock(ctx)
}

// BulkUpdate applies a restricted set of fields to many products at once.
func (s *InventoryService) BulkUpdate(ctx context.Context, ids []string, active, featured *bool, lowStockThreshold *int) (int64, error) {
	set := bson.M{}
	if active != nil {
		set["active"] = *active
	}
	if featured != nil {
		set["featured"] = *featured
	}
	if lowStockThreshold != nil {
		if *lowStockThreshold < 0 {
			return 0, apperr.Validation(map[string]string{"lowStockThreshold": "must not be negative"})
		}
		set["low_stock_threshold"] = *lowStockThreshold
	}
	if len(set) == 0 {
		return 0, apperr.Validation(map[string]string{"fields": "nothing to update"})
	}

	n, err := s.products.BulkUpdate(ctx, ids, set)
	if err != nil {
		return 0, err
	}
	s.catalog.RefreshSnapshot(ctx)
	return n, nil
}
