package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/pkg/bind"
	"github.com/shirshak001/JEWEL/pkg/response"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Slug        string `json:"slug"        validate:"nullable,alpha_dash"`
	Description string `json:"description" validate:"nullable,max=2000"`
	ParentID    string `json:"parentId"`
	Image       string `json:"image"       validate:"nullable,url"`
	Order       int    `json:"order"`
	Active      *bool  `json:"active"`
}

func (in *categoryInput) applyTo(c *models.Category) {
	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	c.Image = in.Image
	c.Order = in.Order
	if in.Active != nil {
		c.Active = *in.Active
	} else {
		c.Active = true
	}
	c.ParentID = nil
	if in.ParentID != "" {
		if oid, err := primitive.ObjectIDFromHex(in.ParentID); err == nil {
			c.ParentID = &oid
		}
	}
}

// Tree handles GET /api/categories.
func (c *CategoryController) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := c.categories.Tree(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, tree)
}

// Show handles GET /api/categories/{slug}.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.Get(r.Context(), param(r, "slug"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

// Create handles POST /api/admin/categories.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var category models.Category
	in.applyTo(&category)

	created, err := c.categories.Create(r.Context(), &category)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, created)
}

// Update handles PUT /api/admin/categories/{slug}.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(r.Context(), param(r, "slug"), in.applyTo)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

// Delete handles DELETE /api/admin/categories/{id}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.categories.Delete(r.Context(), param(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, "Category deleted")
}
