// Package storage defines the database capability a client can optionally carry.
package storage

import "context"

// Database runs parameterized queries and returns rows of type R.
// Implementations own connection handling and report their own errors;
// args are positional ($1, $2, ...).
type Database[R any] interface {
	// Fetch returns every row produced by query.
	Fetch(ctx context.Context, query string, args ...any) ([]R, error)

	// FetchRow returns the first row, or nil when the query produced none.
	FetchRow(ctx context.Context, query string, args ...any) (*R, error)

	// FetchVal returns the first column of the first row, or nil when there are no rows.
	FetchVal(ctx context.Context, query string, args ...any) (any, error)

	// Execute runs a statement and returns its command status, e.g. "UPDATE 3".
	Execute(ctx context.Context, query string, args ...any) (string, error)

	// ExecuteMany runs query once per argument set and returns the last status.
	ExecuteMany(ctx context.Context, query string, argSets [][]any) (string, error)
}
