package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mx-space/formcraft/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDoc struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// Mongo stores the blob as one document keyed by _id.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	key    string
}

// DialMongo connects and pings the server.
func DialMongo(ctx context.Context, cfg config.MongoConfig, key string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		key:    key,
	}, nil
}

func (m *Mongo) Read(ctx context.Context) (string, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return EmptyCollection, nil
	}
	if err != nil {
		return "", fmt.Errorf("mongo find %s: %w", m.key, err)
	}
	return doc.Value, nil
}

func (m *Mongo) Write(ctx context.Context, value string) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": m.key},
		mongoDoc{ID: m.key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", m.key, err)
	}
	return nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
