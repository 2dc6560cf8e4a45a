package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordwatch/internal/platform/config"
)

// Client wraps the Mongo driver client with health checking capabilities.
type Client struct {
	client   *mongo.Client
	database string
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg config.Mongo) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &Client{client: client, database: cfg.Database}, nil
}

// Database returns the configured application database.
func (c *Client) Database() *mongo.Database {
	return c.client.Database(c.database)
}

// Health checks if the Mongo connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
