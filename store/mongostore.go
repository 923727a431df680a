package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a Store backed by a MongoDB collection.
// collection defaults to "transcripts" if empty.
func NewMongoStore(db *mongo.Database, collection string) Store {
	if collection == "" {
		collection = "transcripts"
	}
	return &mongoStore{collection: db.Collection(collection)}
}

func (s *mongoStore) Save(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return ErrNoID
	}
	stamp(record)

	filter := bson.M{"_id": record.ID}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("%w: upsert %q: %v", ErrSaveFailed, record.ID, err)
	}
	return nil
}

func (s *mongoStore) Load(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find %q: %v", ErrLoadFailed, id, err)
	}
	return &record, nil
}

func (s *mongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete failed: %s: %w", id, err)
	}
	return nil
}

func (s *mongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return ids, nil
}
