package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/database"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository { return &CategoryRepository{} }

func (r *CategoryRepository) col() *mongo.Collection { return database.Categories() }

// All returns every category in display order.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	cur, err := r.col().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("categories: find: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Category{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	return items, nil
}

// FindBySlug returns one category.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := r.col().FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("categories: find slug %s: %w", slug, err)
	}
	return &c, nil
}

// Insert stores a new category. Duplicate slugs map to ErrConflict.
func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.col().InsertOne(ctx, c)
	if database.IsDuplicateKey(err) {
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("categories: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// Update replaces the stored document for c.ID.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now()
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if database.IsDuplicateKey(err) {
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("categories: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a category by hex ID. Children are re-rooted rather than
// deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("categories: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}

	_, err = r.col().UpdateMany(ctx,
		bson.M{"parent_id": oid},
		bson.M{"$unset": bson.M{"parent_id": ""}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("categories: re-root children: %w", err)
	}
	return nil
}
