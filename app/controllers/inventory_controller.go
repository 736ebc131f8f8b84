package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/response"
)

// InventoryController exposes the admin product CRUD surface.
type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

// productInput is the write payload shared by create and update.
type productInput struct {
	Title             string             `json:"title"             validate:"required,max=200"`
	Slug              string             `json:"slug"              validate:"nullable,alpha_dash"`
	Description       string             `json:"description"       validate:"nullable,max=5000"`
	Price             float64            `json:"price"             validate:"required,gt=0"`
	SalePrice         float64            `json:"salePrice"         validate:"nullable,gte=0"`
	Categories        []string           `json:"categories"`
	Tags              []string           `json:"tags"`
	Images            []models.Image     `json:"images"`
	Attributes        []models.Attribute `json:"attributes"`
	SKU               string             `json:"sku"`
	Stock             int                `json:"stock"             validate:"nullable,gte=0"`
	Featured          bool               `json:"featured"`
	Active            *bool              `json:"active"`
	LowStockThreshold int                `json:"lowStockThreshold" validate:"nullable,gte=0"`
}

func (in *productInput) applyTo(p *models.Product) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Description = in.Description
	p.Price = in.Price
	p.SalePrice = in.SalePrice
	p.Categories = in.Categories
	p.Tags = in.Tags
	p.Images = in.Images
	p.Attributes = in.Attributes
	if in.SKU != "" {
		p.Inventory.SKU = in.SKU
	}
	p.Inventory.Stock = in.Stock
	p.Featured = in.Featured
	if in.Active != nil {
		p.Active = *in.Active
	} else {
		p.Active = true
	}
	p.LowStockThreshold = in.LowStockThreshold
}

// Index handles GET /api/admin/products. Unlike the storefront listing it
// includes inactive products and supports stock-state filtering.
func (c *InventoryController) Index(w http.ResponseWriter, r *http.Request) {
	q := catalogQuery(r)
	q.StockStatus = r.URL.Query().Get("stockStatus")

	result, err := c.inventory.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, result.Items, response.Pagination{
		Page:       result.Page,
		PerPage:    result.Limit,
		Total:      result.Total,
		TotalPages: result.Pages,
	})
}

// Show handles GET /api/admin/products/{id}.
func (c *InventoryController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.inventory.Get(r.Context(), param(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// Create handles POST /api/admin/products.
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var p models.Product
	in.applyTo(&p)

	created, err := c.inventory.Create(r.Context(), &p)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, created)
}

// Update handles PUT /api/admin/products/{id}.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.inventory.Update(r.Context(), param(r, "id"), in.applyTo)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.inventory.Delete(r.Context(), param(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, "Product deleted")
}

// AdjustStock handles PATCH /api/admin/products/{id}/stock.
func (c *InventoryController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Operation string `json:"operation" validate:"required,in=increase,decrease,set"`
		Amount    int    `json:"amount"    validate:"required,gte=0"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.inventory.AdjustStock(r.Context(), param(r, "id"), body.Operation, body.Amount)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// LowStock handles GET /api/admin/products/low-stock.
func (c *InventoryController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.inventory.LowStock(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, products)
}

// BulkUpdate handles PATCH /api/admin/products/bulk.
func (c *InventoryController) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs               []string `json:"ids"`
		Active            *bool    `json:"active"`
		Featured          *bool    `json:"featured"`
		LowStockThreshold *int     `json:"lowStockThreshold"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.IDs) == 0 {
		response.ValidationError(w, map[string]string{"ids": "at least one product id is required"})
		return
	}

	updated, err := c.inventory.BulkUpdate(r.Context(), body.IDs, body.Active, body.Featured, body.LowStockThreshold)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"updated": updated})
}
