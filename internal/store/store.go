// Package store persists candidate records as documents: an opaque body plus a flat
// attribute map, filtered by exact equality on stage and job title.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStore marks every failure of the underlying database.
	ErrStore = errors.New("store failure")
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned by Update when the record changed since it was read.
	ErrVersionConflict = errors.New("record version conflict")
)

// Record is a stored document.
type Record struct {
	ID         string
	Stage      string
	JobTitle   string
	Attributes map[string]any
	Body       string
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter selects records by exact equality. Empty fields match anything.
type Filter struct {
	Stage    string
	JobTitle string
}

// Store is the record store used by the agents and the reporting surface.
type Store interface {
	Get(ctx context.Context, f Filter) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// Upsert writes the record unconditionally; the last writer wins.
	Upsert(ctx context.Context, r Record) (Record, error)
	// Update writes the record only if its Version matches the stored one.
	Update(ctx context.Context, r Record) (Record, error)
	Close() error
}

type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string {
	return "store: " + e.op + ": " + e.err.Error()
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStore, e.err}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storeError{op: op, err: err}
}
