package models

// CartItem is one cart line. Name, price, image and metal are copied from
// the product at add-time and deliberately never re-synced with the
// catalogue (snapshot isolation: a later price change does not alter carts).
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Metal     string  `json:"metal,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart holds at most one entry per product.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Find returns the line for productID, or nil.
func (c *Cart) Find(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add merges quantity into an existing line or appends a new one built from
// the given snapshot. Quantities below 1 count as 1.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if existing := c.Find(item.ProductID); existing != nil {
		existing.Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line for productID, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity updates a line's quantity, clamped to a minimum of 1.
// Unknown product IDs are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	if item := c.Find(productID); item != nil {
		if qty < 1 {
			qty = 1
		}
		item.Quantity = qty
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}
