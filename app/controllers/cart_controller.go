package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/response"
)

// CartController manages the server-held cart addressed by X-Cart-ID.
type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// cartPayload is the envelope returned after every cart operation.
func cartPayload(cart *models.Cart) map[string]interface{} {
	return map[string]interface{}{
		"items":     cart.Items,
		"total":     cart.Total(),
		"itemCount": cart.ItemCount(),
	}
}

// Show handles GET /api/cart/items.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	cart, err := c.carts.Load(r.Context(), cartID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// AddItem handles POST /api/cart/items.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId" validate:"required"`
		Quantity  int    `json:"quantity"  validate:"nullable,gte=1"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	cart, err := c.carts.AddItem(r.Context(), cartID(r), body.ProductID, body.Quantity)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// UpdateItem handles PUT /api/cart/items/{productId}.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity" validate:"required,integer"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.UpdateQuantity(r.Context(), cartID(r), param(r, "productId"), body.Quantity)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := c.carts.RemoveItem(r.Context(), cartID(r), param(r, "productId"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// Clear handles DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.carts.Clear(r.Context(), cartID(r)); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, "Cart cleared")
}
