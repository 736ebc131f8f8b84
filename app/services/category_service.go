package services

import (
	"context"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/pkg/apperr"
)

// CategoryService serves the category tree and admin CRUD.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Tree returns all categories arranged into parent/child nodes.
func (s *CategoryService) Tree(ctx context.Context) ([]*models.CategoryNode, error) {
	flat, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}
	return models.BuildCategoryTree(flat), nil
}

// Get returns one category by slug.
func (s *CategoryService) Get(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

// Create stores a new category.
func (s *CategoryService) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.Normalize()
	if c.Name == "" {
		return nil, apperr.Validation(map[string]string{"name": "name is required"})
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies changes to a category found by slug.
func (s *CategoryService) Update(ctx context.Context, slug string, apply func(*models.Category)) (*models.Category, error) {
	c, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	apply(c)
	c.Normalize()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category; its children move to the root level.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
