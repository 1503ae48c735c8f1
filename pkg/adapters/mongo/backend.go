// Package mongo stores notebook documents in a MongoDB collection, one
// document per resource keyed by name.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// DefaultCollection is used when Config.Collection is empty.
const DefaultCollection = "documents"

// Config describes the MongoDB connection.
type Config struct {
	URI        string `yaml:"uri" default:"mongodb://localhost:27017" validate:"required"`
	Database   string `yaml:"database" default:"quire" validate:"required"`
	Collection string `yaml:"collection" default:"documents"`
}

type document struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Backend implements core.Backend over a MongoDB collection.
type Backend struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// New wraps an existing collection.
func New(coll *mongo.Collection, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{coll: coll, logger: logger}
}

// Connect dials uri, pings the server and returns the named database.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

// NewFromConfig connects and returns a backend bound to cfg.Collection.
func NewFromConfig(ctx context.Context, cfg Config, logger *zap.Logger) (*Backend, error) {
	db, err := Connect(ctx, cfg.URI, cfg.Database)
	if err != nil {
		return nil, err
	}
	name := cfg.Collection
	if name == "" {
		name = DefaultCollection
	}
	return New(db.Collection(name), logger), nil
}

// Read returns the stored bytes for name.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	var doc document
	err := b.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", name, err)
	}
	return doc.Data, nil
}

// Write upserts the document for name.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	update := bson.M{"$set": bson.M{"data": data, "updated_at": time.Now()}}
	_, err := b.coll.UpdateOne(ctx, bson.M{"_id": name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", name, err)
	}
	b.logger.Debug("stored notebook in mongo",
		zap.String("collection", b.coll.Name()),
		zap.String("name", name),
		zap.Int("bytes", len(data)))
	return nil
}

// Disconnect closes the client the collection belongs to.
func (b *Backend) Disconnect(ctx context.Context) error {
	return b.coll.Database().Client().Disconnect(ctx)
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "mongo"
}

var _ core.Backend = (*Backend)(nil)
