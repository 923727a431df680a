// Package store persists chat transcripts so sessions can be resumed later.
// Records are keyed by session ID and saved whole on each write, backed by
// pluggable storage with optional in-memory caching.
package store

import (
	"context"
	"time"
)

// Store translates between external storage and transcript records.
// Implementations are stateless unless documented otherwise; they perform
// I/O on each call.
type Store interface {
	// Save persists a record, creating or overwriting as needed.
	Save(ctx context.Context, record *Record) error
	// Load retrieves a record by ID. Returns nil, nil when no record exists.
	Load(ctx context.Context, id string) (*Record, error)
	// Delete removes a record. Missing IDs are ignored.
	Delete(ctx context.Context, id string) error
	// List returns the IDs of all stored records, sorted.
	List(ctx context.Context) ([]string, error)
}

// stamp sets bookkeeping timestamps before a save.
func stamp(record *Record) {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
}
