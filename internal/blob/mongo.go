package blob

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "blobs"

// MongoBlob keeps each collection as one document: {_id: <key>, data: <bytes>}.
type MongoBlob struct {
	coll *mongo.Collection
}

// NewMongoBlob wraps an already-connected database.
func NewMongoBlob(db *mongo.Database) *MongoBlob {
	return &MongoBlob{coll: db.Collection(mongoCollection)}
}

type mongoDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

func (b *MongoBlob) Read(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDoc
	err := b.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return doc.Data, nil
}

func (b *MongoBlob) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		mongoDoc{ID: key, Data: data},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", key, err)
	}
	return nil
}
