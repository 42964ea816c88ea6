package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction returns a context carrying tx. Stores that find a
// transaction in their context write through it and leave commit and
// rollback to the caller.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the transaction carried by ctx, or nil.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
