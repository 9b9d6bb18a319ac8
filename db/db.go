package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections bundles the storefront collection handles so each
// component receives exactly the storage it uses. The client itself is
// constructed once at startup and owned by the caller; nothing here is
// package-global.
type Collections struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Carts    *mongo.Collection
}

// Connect opens the process-wide MongoDB client and verifies the
// connection. The caller must Disconnect it on shutdown.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func NewCollections(client *mongo.Client, dbName string) Collections {
	database := client.Database(dbName)
	return Collections{
		Users:    database.Collection("users"),
		Products: database.Collection("products"),
		Carts:    database.Collection("cart"),
	}
}

// EnsureIndexes creates the unique and search indexes. Safe to call on
// every startup.
func EnsureIndexes(ctx context.Context, c Collections) error {
	if _, err := c.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	if _, err := c.Products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "category", Value: 1},
			{Key: "brand", Value: 1},
		},
	}); err != nil {
		return fmt.Errorf("products search index: %w", err)
	}

	// One cart per user, enforced by the store itself.
	if _, err := c.Carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("cart userId index: %w", err)
	}
	return nil
}
