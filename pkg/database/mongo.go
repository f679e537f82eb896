// Package database owns the MongoDB connection lifecycle.
//
// The connection is an explicitly constructed handle that is passed to the
// repositories, not a package-level global: callers Connect at boot, hand
// Mongo.Database() to whoever needs it, and Close on shutdown.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inbasree/weddingvista/config"
)

// Mongo wraps a connected client and the application database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB client, verifies the connection with a ping and
// returns the handle. Returns an error instead of calling log.Fatal so the
// caller can shut down gracefully.
func Connect(ctx context.Context) (*Mongo, error) {
	clientOpts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Mongo{
		client: client,
		db:     client.Database(config.MongoDB()),
	}, nil
}

// Database returns the application database handle.
func (m *Mongo) Database() *mongo.Database { return m.db }

// Ping verifies the connection is still live.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client. Safe to call once at shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
