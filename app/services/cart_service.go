package services

import (
	"context"
	"time"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/cache"
)

const cartTTL = 7 * 24 * time.Hour

// CartService keeps one server-held cart per client cart ID. The cart is
// written back to Redis synchronously after every mutation so a lost
// response never loses the cart.
type CartService struct {
	products *repositories.ProductRepository
}

func NewCartService(products *repositories.ProductRepository) *CartService {
	return &CartService{products: products}
}

func cartKey(cartID string) string { return "cart:" + cartID }

// Load fetches the cart for cartID. A missing key is an empty cart.
func (s *CartService) Load(ctx context.Context, cartID string) (*models.Cart, error) {
	if cartID == "" {
		return nil, apperr.Validation(map[string]string{"cartId": "X-Cart-ID header is required"})
	}
	if !cache.Available() {
		return nil, apperr.ErrUnavailable
	}
	var cart models.Cart
	cache.Get(ctx, cartKey(cartID), &cart)
	return &cart, nil
}

func (s *CartService) save(ctx context.Context, cartID string, cart *models.Cart) error {
	return cache.Set(ctx, cartKey(cartID), cart, cartTTL)
}

// AddItem merges qty of the product into the cart, snapshotting name,
// price, primary image and metal at add time.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, qty int) (*models.Cart, error) {
	cart, err := s.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Available() {
		return nil, apperr.ErrInsufficientStock
	}

	item := models.CartItem{
		ProductID: p.ID.Hex(),
		Name:      p.Title,
		Price:     p.Price,
		Metal:     p.Attribute("metal"),
		Quantity:  qty,
	}
	if img := p.PrimaryImage(); img != nil {
		item.Image = img.URL
	}
	cart.Add(item)

	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity, clamped to at least 1.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, qty int) (*models.Cart, error) {
	cart, err := s.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Find(productID) == nil {
		return nil, apperr.ErrNotFound
	}
	cart.SetQuantity(productID, qty)
	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := s.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return apperr.Validation(map[string]string{"cartId": "X-Cart-ID header is required"})
	}
	return cache.Del(ctx, cartKey(cartID))
}
