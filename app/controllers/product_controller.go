package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/response"
)

// ProductController serves the public storefront browse surface.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	res, err := c.catalog.List(r.Context(), catalogQuery(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, res)
}

// Show handles GET /api/products/{slug}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	p, err := c.catalog.Get(r.Context(), param(r, "slug"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, p)
}

// Related handles GET /api/products/related/{id}.
func (c *ProductController) Related(w http.ResponseWriter, r *http.Request) {
	items, err := c.catalog.Related(r.Context(), param(r, "id"), queryInt(r, "limit", 4))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}

// Featured handles GET /api/products/lists/featured.
func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	items, err := c.catalog.Featured(r.Context(), queryInt(r, "limit", 6))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}
