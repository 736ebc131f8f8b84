// Package database owns the MongoDB connection for JEWEL.
//
// Call Connect once at startup, then reach collections through the named
// helpers:
//
//	if err := database.Connect(ctx); err != nil { ... }
//	defer database.Disconnect(ctx)
//	cur, err := database.Products().Find(ctx, filter)
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shirshak001/JEWEL/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client, verifies the connection with a ping and
// creates the indexes the query paths rely on. Returns an error instead of
// exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())

	return ensureIndexes(ctx)
}

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Client exposes the raw client for session/transaction use.
func Client() *mongo.Client { return client }

// DB exposes the application database handle.
func DB() *mongo.Database { return db }

// Collection accessors. Keep collection names in one place.

func Products() *mongo.Collection   { return db.Collection("products") }
func Categories() *mongo.Collection { return db.Collection("categories") }
func Orders() *mongo.Collection     { return db.Collection("orders") }
func Users() *mongo.Collection      { return db.Collection("users") }

// WithTransaction runs fn inside a MongoDB multi-document transaction.
// The order recorder uses this to make the stock decrement and the order
// insert a single atomic unit.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("database: start session: %w", err)
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}

// ensureIndexes mirrors the reference schema: unique slug and SKU, the
// availability compound index, price and recency indexes, unique order
// numbers and user emails.
func ensureIndexes(ctx context.Context) error {
	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := Products().Indexes().CreateMany(idxCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "inventory.sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "inventory.stock", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("database: product indexes: %w", err)
	}

	_, err = Categories().Indexes().CreateMany(idxCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "parent_id", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("database: category indexes: %w", err)
	}

	_, err = Orders().Indexes().CreateMany(idxCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("database: order indexes: %w", err)
	}

	_, err = Users().Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: user indexes: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation, used to
// map slug/SKU collisions to a 409.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
