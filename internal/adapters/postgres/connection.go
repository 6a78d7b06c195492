// Package postgres holds the durable-store adapters (C1): offers,
// payment orders, proofs, and the outbox table, all against a single
// Postgres database via pgx's database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connection is a hub which deals with the coordinator's Postgres
// connection, mirroring the teacher's PostgresConnection singleton but
// against a single database — this coordinator has no read-replica
// routing to do (see SPEC_FULL.md on dropping dbresolver).
type Connection struct {
	ConnectionString string
	DB               *sql.DB
	Connected        bool
}

// Connect opens and pings the database. Callers normally reach it
// indirectly through GetDB.
func (c *Connection) Connect() error {
	db, err := sql.Open("pgx", c.ConnectionString)
	if err != nil {
		return fmt.Errorf("postgres: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}

	c.DB = db
	c.Connected = true

	return nil
}

// GetDB returns the pooled connection, establishing it on first use.
func (c *Connection) GetDB(ctx context.Context) (*sql.DB, error) {
	if c.DB == nil {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	return c.DB, nil
}
