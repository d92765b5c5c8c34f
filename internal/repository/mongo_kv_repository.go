package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Реализация на MongoDB: документ на ключ, ключ — _id.
type MongoKVRepository struct {
	c *mongo.Collection
}

func NewMongoKVRepository(db *mongo.Database, collection string) *MongoKVRepository {
	return &MongoKVRepository{c: db.Collection(collection)}
}

func (r *MongoKVRepository) Get(ctx context.Context, key string) (string, error) {
	var e mongoEntry
	if err := r.c.FindOne(ctx, bson.M{"_id": key}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("mongo get %s: %w", key, err)
	}
	return e.Value, nil
}

func (r *MongoKVRepository) WriteBatch(ctx context.Context, set map[string]string, del []string) error {
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(set)+len(del))
	for k, v := range set {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": k}).
			SetUpdate(bson.M{"$set": bson.M{"value": v, "updated_at": now}}).
			SetUpsert(true))
	}
	for _, k := range del {
		models = append(models, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": k}))
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := r.c.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("mongo write batch: %w", err)
	}
	return nil
}
