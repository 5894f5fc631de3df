// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for all entity tables.
// Queries wraps a database handle with typed, context-first query methods.
package store

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNoFields is returned by partial-update methods when no field was provided.
var ErrNoFields = errors.New("no fields to update")

// DBTX is the subset of *sql.DB / *sql.Tx used by query methods.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds typed query methods over a database handle.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// execAffectingOne runs an exec statement that must affect exactly one row.
// Returns sql.ErrNoRows when zero rows were affected so callers can translate
// it to a not-found condition.
func (q *Queries) execAffectingOne(ctx context.Context, query string, args ...any) error {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
