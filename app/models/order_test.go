package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shirshak001/JEWEL/app/models"
)

func TestRecalculate(t *testing.T) {
	o := models.Order{
		Items: []models.OrderItem{
			{Price: 1000, Quantity: 2},
			{Price: 500, Quantity: 1},
		},
		Tax:      75,
		Shipping: 50,
	}
	o.Recalculate()

	assert.Equal(t, 2000.0, o.Items[0].Subtotal)
	assert.Equal(t, 500.0, o.Items[1].Subtotal)
	assert.Equal(t, 2500.0, o.Subtotal)
	assert.Equal(t, 2625.0, o.Total)
}

func TestComputeTax(t *testing.T) {
	assert.Equal(t, 300.0, models.ComputeTax(10000, 0.03))
	assert.Equal(t, 56.0, models.ComputeTax(1850, 0.03))  // 55.5 rounds up
	assert.Equal(t, 0.0, models.ComputeTax(0, 0.03))
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "AMB-1700000000000", models.GenerateOrderNumber(at))
}

func TestSetStatusAppendsHistory(t *testing.T) {
	var o models.Order
	t0 := time.Now()
	o.SetStatus(models.OrderPending, "order placed", t0)
	o.SetStatus(models.OrderShipped, "handed to courier", t0.Add(time.Hour))

	assert.Equal(t, models.OrderShipped, o.Status)
	assert.Len(t, o.StatusHistory, 2)
	assert.Equal(t, models.OrderPending, o.StatusHistory[0].Status)
	assert.Equal(t, "handed to courier", o.StatusHistory[1].Note)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{models.MethodCard, models.MethodUPI, models.MethodNetbanking, models.MethodCOD} {
		assert.True(t, models.ValidPaymentMethod(m), m)
	}
	assert.False(t, models.ValidPaymentMethod("cheque"))
	assert.False(t, models.ValidPaymentMethod(""))
}

func TestAddressValidate(t *testing.T) {
	var a models.Address
	errs := a.Validate()
	assert.Contains(t, errs, "shipping.fullName")
	assert.Contains(t, errs, "shipping.phone")
	assert.Contains(t, errs, "shipping.addressLine1")
	assert.Contains(t, errs, "shipping.city")
	assert.Contains(t, errs, "shipping.postalCode")

	a = models.Address{
		FullName:     "Priya Sharma",
		Phone:        "+91 98765 43210",
		AddressLine1: "14 MG Road",
		City:         "Bengaluru",
		PostalCode:   "560001",
	}
	assert.Empty(t, a.Validate())
}
