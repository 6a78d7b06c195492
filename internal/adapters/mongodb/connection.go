// Package mongodb stores the opaque offer descriptions the relational
// store only references by document ID. Payer notes are plain columns
// in Postgres, not Mongo documents.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connection is a hub which deals with the coordinator's MongoDB
// connection, mirroring the teacher's MongoConnection singleton.
type Connection struct {
	ConnectionString string
	Database         string

	client    *mongo.Client
	Connected bool
}

func (c *Connection) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.ConnectionString))
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb: ping: %w", err)
	}

	c.client = client
	c.Connected = true

	return nil
}

// GetDB returns the pooled client, establishing it on first use.
func (c *Connection) GetDB(ctx context.Context) (*mongo.Client, error) {
	if c.client == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.client, nil
}
