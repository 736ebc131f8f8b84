package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shirshak001/JEWEL/app/models"
)

// InventoryTotals summarises the products collection for the dashboard.
type InventoryTotals struct {
	Total          int64   `bson:"total"           json:"total"`
	Active         int64   `bson:"active"          json:"active"`
	InStock        int64   `bson:"in_stock"        json:"inStock"`
	LowStock       int64   `bson:"low_stock"       json:"lowStock"`
	OutOfStock     int64   `bson:"out_of_stock"    json:"outOfStock"`
	InventoryValue float64 `bson:"inventory_value" json:"inventoryValue"`
}

// Totals computes product counts per stock state and the sell-through
// value of everything on the shelf, in one aggregation pass.
func (r *ProductRepository) Totals(ctx context.Context) (InventoryTotals, error) {
	inStock := bson.M{"$gt": bson.A{"$inventory.stock", "$low_stock_threshold"}}
	lowStock := bson.M{"$and": bson.A{
		bson.M{"$gt": bson.A{"$inventory.stock", 0}},
		bson.M{"$lte": bson.A{"$inventory.stock", "$low_stock_threshold"}},
	}}
	outOfStock := bson.M{"$eq": bson.A{"$inventory.stock", 0}}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total":        bson.M{"$sum": 1},
			"active":       bson.M{"$sum": bson.M{"$cond": bson.A{"$active", 1, 0}}},
			"in_stock":     bson.M{"$sum": bson.M{"$cond": bson.A{inStock, 1, 0}}},
			"low_stock":    bson.M{"$sum": bson.M{"$cond": bson.A{lowStock, 1, 0}}},
			"out_of_stock": bson.M{"$sum": bson.M{"$cond": bson.A{outOfStock, 1, 0}}},
			"inventory_value": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$price", "$inventory.stock"},
			}},
		}}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return InventoryTotals{}, fmt.Errorf("products: totals: %w", err)
	}
	defer cur.Close(ctx)

	var rows []InventoryTotals
	if err := cur.All(ctx, &rows); err != nil {
		return InventoryTotals{}, fmt.Errorf("products: decode totals: %w", err)
	}
	if len(rows) == 0 {
		return InventoryTotals{}, nil
	}
	return rows[0], nil
}

// CategoryInventory is one row of the per-category inventory report.
type CategoryInventory struct {
	Category string  `bson:"_id"      json:"category"`
	Products int64   `bson:"products" json:"products"`
	Units    int64   `bson:"units"    json:"units"`
	Value    float64 `bson:"value"    json:"value"`
}

// InventoryByCategory unwinds the denormalized category slugs and sums
// stock per category. Products without categories land in "uncategorized".
func (r *ProductRepository) InventoryByCategory(ctx context.Context) ([]CategoryInventory, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"cats": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{bson.M{"$size": bson.M{"$ifNull": bson.A{"$categories", bson.A{}}}}, 0}},
				"$categories",
				bson.A{"uncategorized"},
			}},
		}}},
		{{Key: "$unwind", Value: "$cats"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$cats",
			"products": bson.M{"$sum": 1},
			"units":    bson.M{"$sum": "$inventory.stock"},
			"value":    bson.M{"$sum": bson.M{"$multiply": bson.A{"$price", "$inventory.stock"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "value", Value: -1}}}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("products: inventory by category: %w", err)
	}
	defer cur.Close(ctx)

	rows := []CategoryInventory{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("products: decode inventory: %w", err)
	}
	return rows, nil
}

// Recent returns the newest products for the dashboard feed.
func (r *ProductRepository) Recent(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 5
	}
	cur, err := r.col().Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("products: recent: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return items, nil
}
