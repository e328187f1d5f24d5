package db

import (
	"context"
	"database/sql"
)

// Database is an entity store connection with a managed lifecycle
type Database interface {
	Connect() error
	Close() error
	Ping(ctx context.Context) error
	DB() *sql.DB
}
