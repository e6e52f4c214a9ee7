package database

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/mycompta/internal/pkg/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultMongoTimeout = 10 * time.Second

// MongoClient represents a MongoDB client bound to one database
type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoClient connects to config.URI and pings the primary
func NewMongoClient(config models.MongoConfig) (*MongoClient, error) {
	timeout := defaultMongoTimeout
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoClient{client: client, database: client.Database(config.Database)}, nil
}

// Collection returns a handle on the named collection
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// GetClient returns the underlying driver client
func (m *MongoClient) GetClient() *mongo.Client {
	return m.client
}

// Close disconnects from the server
func (m *MongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
