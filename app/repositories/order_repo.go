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

type OrderRepository struct {
	products *ProductRepository
}

func NewOrderRepository(products *ProductRepository) *OrderRepository {
	return &OrderRepository{products: products}
}

func (r *OrderRepository) col() *mongo.Collection { return database.Orders() }

// InsertWithStockDecrement stores the order and decrements stock for every
// line item inside one MongoDB transaction. Either both writes land or
// neither does; each per-item decrement clamps at zero atomically.
func (r *OrderRepository) InsertWithStockDecrement(ctx context.Context, order *models.Order) error {
	_, err := database.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, item := range order.Items {
			if err := r.products.DecrementStockClamped(sc, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
		res, err := r.col().InsertOne(sc, order)
		if database.IsDuplicateKey(err) {
			return nil, apperr.ErrConflict
		}
		if err != nil {
			return nil, fmt.Errorf("orders: insert: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = oid
		}
		return nil, nil
	})
	return err
}

// FindByNumber returns one order by its public order number.
func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var o models.Order
	err := r.col().FindOne(ctx, bson.M{"order_number": number}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: find %s: %w", number, err)
	}
	return &o, nil
}

// List returns a page of orders, newest first, optionally filtered by
// status.
func (r *OrderRepository) List(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.col().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("orders: count: %w", err)
	}

	cur, err := r.col().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page-1)*limit)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("orders: find: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Order{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("orders: decode: %w", err)
	}
	return items, total, nil
}

// UpdateStatus moves an order to a new fulfilment status with a history
// entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, number, status, note string) (*models.Order, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{"status": status, "updated_at": now},
		"$push": bson.M{"status_history": models.StatusChange{
			Status: status,
			Date:   now,
			Note:   note,
		}},
	}
	var o models.Order
	err := r.col().FindOneAndUpdate(ctx, bson.M{"order_number": number}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: update status: %w", err)
	}
	return &o, nil
}

// MarkPaid records a verified payment against the order.
func (r *OrderRepository) MarkPaid(ctx context.Context, number, paymentID string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentPaid,
		"notes":          "payment " + paymentID,
		"updated_at":     time.Now(),
	}}
	var o models.Order
	err := r.col().FindOneAndUpdate(ctx, bson.M{"order_number": number}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: mark paid: %w", err)
	}
	return &o, nil
}

// ─── Aggregations ─────────────────────────────────────────────────────────────

// OrderTotals summarises the orders collection for the dashboard.
type OrderTotals struct {
	Count     int64   `bson:"count"     json:"count"`
	Revenue   float64 `bson:"revenue"   json:"revenue"`
	Pending   int64   `bson:"pending"   json:"pending"`
	Completed int64   `bson:"completed" json:"completed"`
}

// Totals aggregates order counts and revenue. Revenue counts paid orders
// only.
func (r *OrderRepository) Totals(ctx context.Context) (OrderTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", models.PaymentPaid}}, "$total", 0,
			}}},
			"pending": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.OrderPending}}, 1, 0,
			}}},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.OrderDelivered}}, 1, 0,
			}}},
		}}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return OrderTotals{}, fmt.Errorf("orders: totals: %w", err)
	}
	defer cur.Close(ctx)

	var rows []OrderTotals
	if err := cur.All(ctx, &rows); err != nil {
		return OrderTotals{}, fmt.Errorf("orders: decode totals: %w", err)
	}
	if len(rows) == 0 {
		return OrderTotals{}, nil
	}
	return rows[0], nil
}

// RevenuePoint is one bucket of the revenue-by-period series.
type RevenuePoint struct {
	Period  string  `bson:"_id"     json:"period"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders"  json:"orders"`
}

// periodFormats maps a period name onto a $dateToString format.
var periodFormats = map[string]string{
	"day":   "%Y-%m-%d",
	"week":  "%Y-%U",
	"month": "%Y-%m",
	"year":  "%Y",
}

// RevenueByPeriod buckets paid orders since the cutoff.
func (r *OrderRepository) RevenueByPeriod(ctx context.Context, period string, since time.Time) ([]RevenuePoint, error) {
	format, ok := periodFormats[period]
	if !ok {
		return nil, apperr.Validation(map[string]string{"period": "must be day, week, month or year"})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"payment_status": models.PaymentPaid,
			"created_at":     bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": format, "date": "$created_at"}},
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("orders: revenue by period: %w", err)
	}
	defer cur.Close(ctx)

	points := []RevenuePoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("orders: decode revenue: %w", err)
	}
	return points, nil
}

// TopSeller is one row of the best-sellers report.
type TopSeller struct {
	ProductID primitive.ObjectID `bson:"_id"      json:"productId"`
	Title     string             `bson:"title"    json:"title"`
	Units     int64              `bson:"units"    json:"units"`
	Revenue   float64            `bson:"revenue"  json:"revenue"`
}

// TopSellers unwinds order lines and ranks products by units sold.
func (r *OrderRepository) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	if limit < 1 {
		limit = 5
	}
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$items.product_id",
			"title":   bson.M{"$first": "$items.title"},
			"units":   bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": "$items.subtotal"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "units", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("orders: top sellers: %w", err)
	}
	defer cur.Close(ctx)

	rows := []TopSeller{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("orders: decode top sellers: %w", err)
	}
	return rows, nil
}

// Recent returns the newest orders for the dashboard feed.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit < 1 {
		limit = 5
	}
	cur, err := r.col().Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("orders: recent: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Order{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return items, nil
}
