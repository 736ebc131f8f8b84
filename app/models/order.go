package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle states.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Payment states.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods accepted at checkout.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetbanking = "netbanking"
	MethodCOD        = "cod"
)

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetbanking, MethodCOD:
		return true
	}
	return false
}

// OrderItem is a line item carrying an add-time snapshot of the product's
// title, SKU and price. The snapshot is never re-synced with the catalogue.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Title     string             `bson:"title"      json:"title"`
	SKU       string             `bson:"sku"        json:"sku"`
	Price     float64            `bson:"price"      json:"price"`
	Quantity  int                `bson:"quantity"   json:"quantity"`
	Subtotal  float64            `bson:"subtotal"   json:"subtotal"`
}

// Address is a shipping or billing address.
type Address struct {
	FullName     string `bson:"full_name,omitempty"     json:"fullName,omitempty"`
	Phone        string `bson:"phone,omitempty"         json:"phone,omitempty"`
	Email        string `bson:"email,omitempty"         json:"email,omitempty"`
	AddressLine1 string `bson:"address_line1,omitempty" json:"addressLine1,omitempty"`
	AddressLine2 string `bson:"address_line2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city,omitempty"          json:"city,omitempty"`
	State        string `bson:"state,omitempty"         json:"state,omitempty"`
	PostalCode   string `bson:"postal_code,omitempty"   json:"postalCode,omitempty"`
	Country      string `bson:"country,omitempty"       json:"country,omitempty"`
}

// Validate checks the fields a shipment cannot do without.
func (a *Address) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.FullName) == "" {
		errs["shipping.fullName"] = "recipient name is required"
	}
	if strings.TrimSpace(a.Phone) == "" {
		errs["shipping.phone"] = "phone number is required"
	}
	if strings.TrimSpace(a.AddressLine1) == "" {
		errs["shipping.addressLine1"] = "street address is required"
	}
	if strings.TrimSpace(a.City) == "" {
		errs["shipping.city"] = "city is required"
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		errs["shipping.postalCode"] = "postal code is required"
	}
	return errs
}

// StatusChange is one entry of an order's status history log.
type StatusChange struct {
	Status string    `bson:"status"         json:"status"`
	Date   time.Time `bson:"date"           json:"date"`
	Note   string    `bson:"note,omitempty" json:"note,omitempty"`
}

// Order is a checkout snapshot stored in the orders collection.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	OrderNumber     string             `bson:"order_number"              json:"orderNumber"`
	Items           []OrderItem        `bson:"items"                     json:"items"`
	Subtotal        float64            `bson:"subtotal"                  json:"subtotal"`
	Tax             float64            `bson:"tax"                       json:"tax"`
	Shipping        float64            `bson:"shipping"                  json:"shipping"`
	Total           float64            `bson:"total"                     json:"total"`
	Status          string             `bson:"status"                    json:"status"`
	PaymentStatus   string             `bson:"payment_status"            json:"paymentStatus"`
	PaymentMethod   string             `bson:"payment_method"            json:"paymentMethod"`
	ShippingAddress Address            `bson:"shipping_address"          json:"shippingAddress"`
	BillingAddress  Address            `bson:"billing_address,omitempty" json:"billingAddress,omitempty"`
	Notes           string             `bson:"notes,omitempty"           json:"notes,omitempty"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"trackingNumber,omitempty"`
	StatusHistory   []StatusChange     `bson:"status_history"            json:"statusHistory"`
	CreatedAt       time.Time          `bson:"created_at"                json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at"                json:"updatedAt"`
}

// Recalculate recomputes line subtotals and order totals from the items.
// Must run before every save so stored totals can never drift from the lines.
func (o *Order) Recalculate() {
	var subtotal float64
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].Price * float64(o.Items[i].Quantity)
		subtotal += o.Items[i].Subtotal
	}
	o.Subtotal = subtotal
	o.Total = o.Subtotal + o.Tax + o.Shipping
}

// SetStatus moves the order to a new status and appends a history entry.
func (o *Order) SetStatus(status, note string, at time.Time) {
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status: status,
		Date:   at,
		Note:   note,
	})
}

// ComputeTax applies the flat GST rate to a subtotal, rounded to the nearest
// whole currency unit.
func ComputeTax(subtotal, rate float64) float64 {
	return math.Round(subtotal * rate)
}

// GenerateOrderNumber produces the time-based AMB order identifier.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("AMB-%d", at.UnixMilli())
}
