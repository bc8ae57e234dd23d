package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Open connects to MongoDB and verifies the connection with a ping.
// The returned database is the shared place store handle; callers own
// closing the underlying client.
func Open(ctx context.Context, url, name string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return client.Database(name), nil
}

// EnsureIndexes creates the indexes the proximity queries and the
// claim protocol rely on: a 2dsphere index on location for $near, and
// a unique index on id for single-document lookups and conditional
// updates. Safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	places := db.Collection("places")

	_, err := places.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("creating place indexes: %w", err)
	}
	return nil
}
