// Package mongo persists the gateway session in a MongoDB collection,
// one document per client id.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName        = "rdv360-gateway"
	connectTimeout = 10 * time.Second
)

// Config locates the database holding the client_sessions collection.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping. Defaults to 10s.
	Timeout time.Duration
}

// Connect dials cfg.URI and returns an error unless the server answers a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetAppName(appName)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect session mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping session mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}
