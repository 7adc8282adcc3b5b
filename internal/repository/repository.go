// Package repository implements the persistence layer over PostgreSQL.
//
// Queries run against a DBTX, which is satisfied by both *sql.DB and
// *sql.Tx so the same query methods work inside and outside transactions.
// Repository adds transaction management on top.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sqlc-dev/pqtype"
)

// DBTX is the subset of database handle methods queries depend on.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the database handle for query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Repository combines query methods with transaction management.
type Repository struct {
	*Queries
	db *sql.DB
}

// NewRepository creates a Repository over the database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Queries: New(db),
		db:      db,
	}
}

// ExecTx runs fn inside a transaction. The transaction is rolled back if fn
// returns an error and committed otherwise.
func (r *Repository) ExecTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(r.Queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// marshalJSON encodes v as a JSONB parameter.
func marshalJSON(v interface{}) (pqtype.NullRawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("marshal jsonb: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

// nullRaw allocates a scan target for a nullable JSONB column.
func nullRaw() *pqtype.NullRawMessage {
	return &pqtype.NullRawMessage{}
}

// unmarshalJSON decodes a JSONB column into v, tolerating NULL.
func unmarshalJSON(raw pqtype.NullRawMessage, v interface{}) error {
	if !raw.Valid || len(raw.RawMessage) == 0 {
		return nil
	}
	return json.Unmarshal(raw.RawMessage, v)
}
