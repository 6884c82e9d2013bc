// Package database provides the document-store abstraction for the
// HomeGame API.
//
// The Database interface exposes three query methods:
//   - Query: multiple results (SELECT queries returning lists)
//   - QueryOne: a single result (SELECT by ID or unique field)
//   - Execute: no return value (CREATE/UPDATE/DELETE mutations)
//
// Multi-statement writes against a single aggregate (e.g. deleting a
// session and clearing its game's reference) go through AtomicBatch in
// transaction.go, which wraps statements in BEGIN/COMMIT TRANSACTION.
// Cross-aggregate cascades remain sequential best-effort calls owned by
// the service layer.
//
// Standard errors are defined for common failure cases; use errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g. duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for document-store operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
