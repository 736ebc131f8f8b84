package services

import (
	"context"
	"time"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/pkg/metrics"
)

// DashboardStats is the aggregate payload for the admin home screen.
type DashboardStats struct {
	Inventory      repositories.InventoryTotals `json:"inventory"`
	Orders         repositories.OrderTotals     `json:"orders"`
	AverageOrder   float64                      `json:"averageOrder"`
	RecentOrders   []models.Order               `json:"recentOrders"`
	RecentProducts []models.Product             `json:"recentProducts"`
	TopSellers     []repositories.TopSeller     `json:"topSellers"`
	RevenueByDay   []repositories.RevenuePoint  `json:"revenueByDay"`
}

// StatsService assembles the dashboard and inventory reports.
type StatsService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func NewStatsService(products *repositories.ProductRepository, orders *repositories.OrderRepository) *StatsService {
	return &StatsService{products: products, orders: orders}
}

// Dashboard gathers the admin home-screen numbers.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	inv, err := s.products.Totals(ctx)
	if err != nil {
		return nil, err
	}
	ord, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Inventory: inv, Orders: ord}
	if ord.Count > 0 {
		stats.AverageOrder = ord.Revenue / float64(ord.Count)
	}

	if stats.RecentOrders, err = s.orders.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if stats.RecentProducts, err = s.products.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if stats.TopSellers, err = s.orders.TopSellers(ctx, 5); err != nil {
		return nil, err
	}
	if stats.RevenueByDay, err = s.orders.RevenueByPeriod(ctx, "day", time.Now().AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	metrics.SetLowStockCount(int(inv.LowStock))
	return stats, nil
}

// InventoryByCategory returns the per-category stock report.
func (s *StatsService) InventoryByCategory(ctx context.Context) ([]repositories.CategoryInventory, error) {
	return s.products.InventoryByCategory(ctx)
}

// salesWindows maps a period onto its reporting window.
var salesWindows = map[string]func(time.Time) time.Time{
	"day":   func(t time.Time) time.Time { return t.AddDate(0, 0, -30) },
	"week":  func(t time.Time) time.Time { return t.AddDate(0, -6, 0) },
	"month": func(t time.Time) time.Time { return t.AddDate(-1, 0, 0) },
	"year":  func(t time.Time) time.Time { return t.AddDate(-5, 0, 0) },
}

// Sales buckets paid revenue by the requested period.
func (s *StatsService) Sales(ctx context.Context, period string) ([]repositories.RevenuePoint, error) {
	window, ok := salesWindows[period]
	if !ok {
		window = salesWindows["day"]
		period = "day"
	}
	return s.orders.RevenueByPeriod(ctx, period, window(time.Now()))
}
