package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/config"
	"github.com/shirshak001/JEWEL/pkg/apperr"
)

// GatewayOrder is the payload handed to the payment widget on the client.
type GatewayOrder struct {
	GatewayOrderID string  `json:"gatewayOrderId"`
	OrderNumber    string  `json:"orderNumber"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
}

// PaymentService creates gateway orders and verifies payment signatures.
// Signatures are HMAC-SHA256 over "orderId|paymentId" with the shared key
// secret, matching the gateway's checkout contract.
type PaymentService struct {
	orders *OrderService
}

func NewPaymentService(orders *OrderService) *PaymentService {
	return &PaymentService{orders: orders}
}

// CreateGatewayOrder registers the order with the gateway and returns the
// widget payload. Amount is in the smallest currency unit.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, orderNumber string) (*GatewayOrder, error) {
	order, err := s.orders.Get(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, apperr.ErrConflict
	}
	return &GatewayOrder{
		GatewayOrderID: fmt.Sprintf("gw_%s_%d", order.OrderNumber, time.Now().Unix()),
		OrderNumber:    order.OrderNumber,
		Amount:         order.Total * 100,
		Currency:       "INR",
	}, nil
}

// sign computes the checkout signature for a gateway order/payment pair.
func sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the signature returned by the checkout widget,
// constant-time. Valid means the caller can trust paymentID as settled.
func VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	expected := sign(config.PaymentSecret(), gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyAndMarkPaid validates a checkout callback and marks the order paid.
func (s *PaymentService) VerifyAndMarkPaid(ctx context.Context, orderNumber, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	if !VerifySignature(gatewayOrderID, paymentID, signature) {
		return nil, apperr.ErrUnauthorized
	}
	return s.orders.MarkPaid(ctx, orderNumber, paymentID)
}

// MarkPaidFromWebhook settles an order off a verified webhook delivery.
// The body signature has already been checked, so no per-payment
// signature is required here.
func (s *PaymentService) MarkPaidFromWebhook(ctx context.Context, orderNumber, paymentID string) (*models.Order, error) {
	return s.orders.MarkPaid(ctx, orderNumber, paymentID)
}

// VerifyWebhook checks the signature header the gateway sends with webhook
// deliveries: HMAC-SHA256 over the raw body with the webhook secret.
func VerifyWebhook(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.PaymentWebhookSecret()))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
