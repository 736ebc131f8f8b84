package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// CreateOrder handles POST /api/payments/create-order.
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderNumber string `json:"orderNumber" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	gw, err := c.payments.CreateGatewayOrder(r.Context(), body.OrderNumber)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, gw)
}

// Verify handles POST /api/payments/verify. The signature proves the
// client-side payment callback came from the gateway.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderNumber    string `json:"orderNumber"    validate:"required"`
		GatewayOrderID string `json:"gatewayOrderId" validate:"required"`
		PaymentID      string `json:"paymentId"      validate:"required"`
		Signature      string `json:"signature"      validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.payments.VerifyAndMarkPaid(r.Context(), body.OrderNumber, body.GatewayOrderID, body.PaymentID, body.Signature)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

// Webhook handles POST /api/payments/webhook. The signature is computed
// over the raw body, so it is read before any JSON decoding.
func (c *PaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unable to read body")
		return
	}
	if !services.VerifyWebhook(body, r.Header.Get("X-Webhook-Signature")) {
		response.Unauthorized(w)
		return
	}

	var payload struct {
		Event   string `json:"event"`
		Payload struct {
			OrderNumber    string `json:"orderNumber"`
			GatewayOrderID string `json:"gatewayOrderId"`
			PaymentID      string `json:"paymentId"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed webhook payload")
		return
	}

	if payload.Event == "payment.captured" {
		if _, err := c.payments.MarkPaidFromWebhook(r.Context(), payload.Payload.OrderNumber, payload.Payload.PaymentID); err != nil {
			logger.Error("webhook: mark paid failed", "order", payload.Payload.OrderNumber, "error", err)
		}
	}

	// Webhooks are acknowledged regardless so the gateway stops retrying.
	response.Message(w, "ok")
}
