package services

import (
	"context"
	"time"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/config"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/collection"
	"github.com/shirshak001/JEWEL/pkg/event"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/metrics"
)

// StockAlert is the payload fired on stock.low / stock.out events.
type StockAlert struct {
	ProductID string            `json:"productId"`
	Title     string            `json:"title"`
	SKU       string            `json:"sku"`
	Stock     int               `json:"stock"`
	State     models.StockState `json:"state"`
}

// OrderService turns carts into orders.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	carts    *CartService
	catalog  *CatalogService
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	carts *CartService,
	catalog *CatalogService,
) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts, catalog: catalog}
}

// PlaceOrder records a checkout. Stock decrements (clamped at zero per
// item) and the order insert run in one MongoDB transaction, then the cart
// is cleared and the catalogue snapshot refreshed. Prices come from the
// cart's add-time snapshot; they are what the customer saw.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, shipping models.Address, paymentMethod, notes string) (*models.Order, error) {
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, apperr.Validation(map[string]string{"paymentMethod": "unsupported payment method"})
	}
	if errs := shipping.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	cart, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperr.Validation(map[string]string{"cart": "cart is empty"})
	}

	// Every line must reference a live, in-stock product before the
	// transaction is attempted.
	ids := collection.Map(cart.Items, func(it models.CartItem) string { return it.ProductID })
	products, err := s.products.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := collection.KeyBy(products, func(p models.Product) string { return p.ID.Hex() })

	now := time.Now()
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, ok := byID[line.ProductID]
		if !ok || !p.Available() {
			return nil, apperr.ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Title:     line.Name,
			SKU:       p.Inventory.SKU,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		OrderNumber:     models.GenerateOrderNumber(now),
		Items:           items,
		Shipping:        0,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shipping,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.Recalculate()
	order.Tax = models.ComputeTax(order.Subtotal, config.TaxRate())
	order.Recalculate()
	order.SetStatus(models.OrderPending, "order placed", now)

	if err := s.orders.InsertWithStockDecrement(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		logger.WithCtx(ctx).Warn("order: cart clear failed", "cart_id", cartID, "error", err)
	}
	s.catalog.RefreshSnapshot(ctx)

	metrics.OrderPlaced(order.Total)
	event.FireAsync(event.OrderPlaced, order)
	s.fireStockAlerts(ctx, ids)

	logger.WithCtx(ctx).Info("order placed",
		"order_number", order.OrderNumber,
		"items", len(order.Items),
		"total", order.Total,
	)
	return order, nil
}

// fireStockAlerts re-reads the touched products and raises low/out events
// for any that crossed a threshold.
func (s *OrderService) fireStockAlerts(ctx context.Context, ids []string) {
	products, err := s.products.FindManyByIDs(ctx, ids)
	if err != nil {
		logger.WithCtx(ctx).Warn("order: stock alert check failed", "error", err)
		return
	}
	for i := range products {
		p := &products[i]
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
	}
	if n, err := s.products.CountLowStock(ctx); err == nil {
		metrics.SetLowStockCount(int(n))
	}
}

// Get returns an order by its public number.
func (s *OrderService) Get(ctx context.Context, number string) (*models.Order, error) {
	return s.orders.FindByNumber(ctx, number)
}

// List returns a page of orders for the admin dashboard.
func (s *OrderService) List(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	return s.orders.List(ctx, status, page, limit)
}

// UpdateStatus moves an order through its lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, number, status, note string) (*models.Order, error) {
	switch status {
	case models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled, models.OrderRefunded:
	default:
		return nil, apperr.Validation(map[string]string{"status": "unknown order status"})
	}
	return s.orders.UpdateStatus(ctx, number, status, note)
}

// MarkPaid records a verified gateway payment.
func (s *OrderService) MarkPaid(ctx context.Context, number, paymentID string) (*models.Order, error) {
	return s.orders.MarkPaid(ctx, number, paymentID)
}
