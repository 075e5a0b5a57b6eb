// Package postgres persists raw view rows for the ingest context.
package postgres

import (
	"context"
	"database/sql"
)

// DB narrows database/sql to the single call the event repository makes, so
// tests run against a hand-rolled fake instead of a live connection.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
