package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSnapshotsCollection is the MongoDB collection holding one document per resource.
const MongoSnapshotsCollection = "collections"

type mongoSnapshot[T any] struct {
	Name    string `bson:"_id"`
	Records []T    `bson:"records"`
}

// MongoCollection stores the whole collection as the records array of a
// single document keyed by the collection name.
type MongoCollection[T any] struct {
	coll *mongo.Collection
	name string
}

// NewMongoCollection keeps the collection called name as one document in coll.
func NewMongoCollection[T any](coll *mongo.Collection, name string) *MongoCollection[T] {
	return &MongoCollection[T]{coll: coll, name: name}
}

func (c *MongoCollection[T]) Name() string { return c.name }

func (c *MongoCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	var snapshot mongoSnapshot[T]
	err := c.coll.FindOne(ctx, bson.M{"_id": c.name}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	if snapshot.Records == nil {
		return []T{}, nil
	}
	return snapshot.Records, nil
}

func (c *MongoCollection[T]) WriteAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	snapshot := mongoSnapshot[T]{Name: c.name, Records: records}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": c.name}, snapshot, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", c.name, err)
	}
	return nil
}
