package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tournamentRowDoc is one document per tournament name.
type tournamentRowDoc struct {
	Name      string    `bson:"name"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoRowStore struct {
	coll *mongo.Collection
}

// NewMongoRowStore stores rows in coll, one document per name.
func NewMongoRowStore(coll *mongo.Collection) RowStore {
	return &mongoRowStore{coll: coll}
}

// EnsureMongoIndexes creates the unique name index the row store relies on.
func EnsureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create name index on %s: %w", coll.Name(), err)
	}
	return nil
}

func (s *mongoRowStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc tournamentRowDoc
	err := s.coll.FindOne(ctx, bson.M{"name": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRowNotFound
		}
		return nil, fmt.Errorf("error fetching tournament row %q: %w", key, err)
	}
	return doc.Payload, nil
}

func (s *mongoRowStore) Put(ctx context.Context, key string, value []byte) error {
	doc := tournamentRowDoc{Name: key, Payload: value, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"name": key},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tournament row %q: %w", key, err)
	}
	return nil
}

func (s *mongoRowStore) Delete(ctx context.Context, key string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": key})
	if err != nil {
		return fmt.Errorf("failed to delete tournament row %q: %w", key, err)
	}
	if res.DeletedCount == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (s *mongoRowStore) Keys(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament rows: %w", err)
	}
	defer cursor.Close(ctx)

	keys := make([]string, 0)
	for cursor.Next(ctx) {
		var doc tournamentRowDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode tournament row: %w", err)
		}
		keys = append(keys, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return keys, nil
}
