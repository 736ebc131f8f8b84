package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Place handles POST /api/orders. The cart referenced by X-Cart-ID is
// converted into an order and cleared on success.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shipping      models.Address `json:"shipping"`
		PaymentMethod string         `json:"paymentMethod" validate:"required"`
		Notes         string         `json:"notes"         validate:"nullable,max=1000"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.PlaceOrder(r.Context(), cartID(r), body.Shipping, body.PaymentMethod, body.Notes)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, order)
}

// Show handles GET /api/orders/{orderNumber}.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.Get(r.Context(), param(r, "orderNumber"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

// Index handles GET /api/admin/orders.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	orders, total, err := c.orders.List(r.Context(), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, orders, response.NewPagination(page, limit, total))
}

// UpdateStatus handles PATCH /api/admin/orders/{orderNumber}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status" validate:"required"`
		Note   string `json:"note"   validate:"nullable,max=500"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), param(r, "orderNumber"), body.Status, body.Note)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}
