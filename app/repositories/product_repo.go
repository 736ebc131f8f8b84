// Package repositories holds the MongoDB data access layer. Repositories
// translate between domain models and bson and map driver errors onto the
// app error taxonomy; they carry no business rules.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/internal/catalog"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/database"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository { return &ProductRepository{} }

func (r *ProductRepository) col() *mongo.Collection { return database.Products() }

// filterFor builds the bson filter for a catalog query. Public queries are
// always scoped to active products with stock; admin queries may widen.
func filterFor(q catalog.Query) bson.M {
	filter := bson.M{}
	if !q.IncludeInactive {
		filter["active"] = true
		filter["inventory.stock"] = bson.M{"$gt": 0}
	}
	price := bson.M{}
	if q.MinPrice > 0 {
		price["$gte"] = q.MinPrice
	}
	if q.MaxPrice > 0 {
		price["$lte"] = q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	// Category and search both expand to $or clauses; when both apply
	// they are combined under $and so neither clobbers the other.
	var clauses []bson.M
	if q.Category != "" && q.Category != "all" {
		clauses = append(clauses, categoryClause(q.Category))
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexQuote(q.Search), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}})
	}
	switch len(clauses) {
	case 1:
		for k, v := range clauses[0] {
			filter[k] = v
		}
	case 2:
		filter["$and"] = bson.A{clauses[0], clauses[1]}
	}
	switch q.StockStatus {
	case "in":
		filter["$expr"] = bson.M{"$gt": bson.A{"$inventory.stock", "$low_stock_threshold"}}
	case "low":
		filter["$expr"] = bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{"$inventory.stock", 0}},
			bson.M{"$lte": bson.A{"$inventory.stock", "$low_stock_threshold"}},
		}}
	case "out":
		filter["inventory.stock"] = 0
	}
	return filter
}

// categoryClause matches a product into a category the same way
// catalog.MatchesCategory does: explicit slug membership, or a title
// keyword with the slug's exclusions applied.
func categoryClause(slug string) bson.M {
	match, exclude := catalog.KeywordFilter(slug)
	if len(match) == 0 {
		return bson.M{"categories": slug}
	}
	byTitle := bson.M{"title": primitive.Regex{Pattern: strings.Join(match, "|"), Options: "i"}}
	if len(exclude) > 0 {
		byTitle = bson.M{"$and": bson.A{
			byTitle,
			bson.M{"title": bson.M{"$not": primitive.Regex{Pattern: strings.Join(exclude, "|"), Options: "i"}}},
		}}
	}
	return bson.M{"$or": bson.A{
		bson.M{"categories": slug},
		byTitle,
	}}
}

// regexQuote escapes user input so a search string is never interpreted as
// a pattern.
func regexQuote(s string) string {
	const special = `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, c := range s {
		for _, sp := range special {
			if c == sp {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, c)
	}
	return string(out)
}

func sortFor(sortBy string) bson.D {
	switch sortBy {
	case catalog.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case catalog.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case catalog.SortName:
		return bson.D{{Key: "title", Value: 1}}
	case catalog.SortNewest:
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		// featured: flagged products first, then stored order
		return bson.D{{Key: "featured", Value: -1}, {Key: "_id", Value: 1}}
	}
}

// List runs a catalog query against MongoDB.
func (r *ProductRepository) List(ctx context.Context, q catalog.Query) (catalog.Result, error) {
	q.Normalize()
	filter := filterFor(q)

	total, err := r.col().CountDocuments(ctx, filter)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("products: count: %w", err)
	}

	opts := options.Find().
		SetSort(sortFor(q.SortBy)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	if q.SortBy == catalog.SortName {
		opts.SetCollation(&options.Collation{Locale: "en", Strength: 2})
	}

	cur, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("products: find: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return catalog.Result{}, fmt.Errorf("products: decode: %w", err)
	}

	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	return catalog.Result{
		Items: items,
		Total: total,
		Page:  q.Page,
		Pages: pages,
		Limit: q.Limit,
	}, nil
}

// AllActive returns every publicly visible product, used to build the
// catalog snapshot cache.
func (r *ProductRepository) AllActive(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col().Find(ctx,
		bson.M{"active": true, "inventory.stock": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("products: find active: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}

// FindBySlug returns one product. publicOnly restricts to storefront
// visibility.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Product, error) {
	filter := bson.M{"slug": slug}
	if publicOnly {
		filter["active"] = true
	}
	var p models.Product
	err := r.col().FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products: find slug %s: %w", slug, err)
	}
	return &p, nil
}

// FindByID returns one product by ObjectID hex.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var p models.Product
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products: find id %s: %w", id, err)
	}
	return &p, nil
}

// FindManyByIDs fetches products for the given hex IDs. Unknown IDs are
// silently absent from the result.
func (r *ProductRepository) FindManyByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	cur, err := r.col().Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("products: find many: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}

// Related returns up to limit other visible products sharing a category
// with the given product.
func (r *ProductRepository) Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	filter := bson.M{
		"_id":             bson.M{"$ne": p.ID},
		"active":          true,
		"inventory.stock": bson.M{"$gt": 0},
	}
	if len(p.Categories) > 0 {
		filter["categories"] = bson.M{"$in": p.Categories}
	}
	cur, err := r.col().Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("products: related: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}

// Featured returns up to limit flagged, visible products.
func (r *ProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	cur, err := r.col().Find(ctx,
		bson.M{"featured": true, "active": true, "inventory.stock": bson.M{"$gt": 0}},
		options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("products: featured: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}

// Insert stores a new product. Duplicate slug or SKU maps to ErrConflict.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col().InsertOne(ctx, p)
	if database.IsDuplicateKey(err) {
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update replaces the stored document for p.ID.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if database.IsDuplicateKey(err) {
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("products: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a product by hex ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AdjustStock applies a stock operation and returns the updated product.
// "decrease" uses a guarded filter so stock can never go below zero; a
// miss on the guard surfaces as ErrInsufficientStock.
func (r *ProductRepository) AdjustStock(ctx context.Context, id, operation string, amount int) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	filter := bson.M{"_id": oid}
	var update bson.M
	switch operation {
	case "increase":
		update = bson.M{
			"$inc": bson.M{"inventory.stock": amount},
			"$set": bson.M{"updated_at": time.Now()},
		}
	case "decrease":
		filter["inventory.stock"] = bson.M{"$gte": amount}
		update = bson.M{
			"$inc": bson.M{"inventory.stock": -amount},
			"$set": bson.M{"updated_at": time.Now()},
		}
	case "set":
		update = bson.M{
			"$set": bson.M{"inventory.stock": amount, "updated_at": time.Now()},
		}
	default:
		return nil, apperr.Validation(map[string]string{"operation": "must be increase, decrease or set"})
	}

	var p models.Product
	err = r.col().FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if operation == "decrease" {
			// Distinguish a missing product from a stock guard miss.
			if _, ferr := r.FindByID(ctx, id); ferr == nil {
				return nil, apperr.ErrInsufficientStock
			}
		}
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products: adjust stock: %w", err)
	}
	return &p, nil
}

// DecrementStockClamped reduces a product's stock by qty inside sc,
// clamping at zero in a single aggregation-pipeline update. Checkout uses
// this per line item inside the order transaction.
func (r *ProductRepository) DecrementStockClamped(sc mongo.SessionContext, id primitive.ObjectID, qty int) error {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"inventory.stock": bson.M{
				"$max": bson.A{0, bson.M{"$subtract": bson.A{"$inventory.stock", qty}}},
			},
			"updated_at": time.Now(),
		}},
	}
	res, err := r.col().UpdateOne(sc, bson.M{"_id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("products: decrement stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// LowStock returns active products at or below their low-stock threshold,
// out-of-stock ones included.
func (r *ProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	filter := bson.M{
		"active": true,
		"$expr":  bson.M{"$lte": bson.A{"$inventory.stock", "$low_stock_threshold"}},
	}
	cur, err := r.col().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "inventory.stock", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("products: low stock: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}

// CountLowStock feeds the low-stock gauge.
func (r *ProductRepository) CountLowStock(ctx context.Context) (int64, error) {
	return r.col().CountDocuments(ctx, bson.M{
		"active": true,
		"$expr":  bson.M{"$lte": bson.A{"$inventory.stock", "$low_stock_threshold"}},
	})
}

// BulkUpdate applies the same partial update to many products at once.
func (r *ProductRepository) BulkUpdate(ctx context.Context, ids []string, set bson.M) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}
	set["updated_at"] = time.Now()
	res, err := r.col().UpdateMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("products: bulk update: %w", err)
	}
	return res.ModifiedCount, nil
}
