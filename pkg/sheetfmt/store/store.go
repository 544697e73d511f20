// Package store persists the output of batch renders.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store persists rendered batches.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a batch. Overwrites a batch with the same ID.
	Save(b *Batch) error

	// Load retrieves a batch with its rows.
	// Returns ErrNotFound if the batch doesn't exist.
	Load(id string) (*Batch, error)

	// List returns batch summaries in save order. An empty template
	// lists every batch. Returns an empty slice (not error) if none match.
	List(template string) ([]Info, error)

	// Delete removes a batch.
	// Returns nil if the batch doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Batch is one template rendered against a list of rows.
type Batch struct {
	ID string
	// Template is the template name.
	Template string
	// Text is the template text at render time.
	Text      string
	CreatedAt time.Time
	Rows      []Row
}

// Row is the outcome of rendering one row.
type Row struct {
	// Index is the 0-based position of the row in its source.
	Index  int
	Output string
	// Error is the failure message, empty on success.
	Error string
}

// Failed returns the number of rows with an error.
func (b *Batch) Failed() int {
	n := 0
	for _, r := range b.Rows {
		if r.Error != "" {
			n++
		}
	}
	return n
}

// Info provides batch metadata without loading rows.
type Info struct {
	ID        string
	Template  string
	Sequence  int
	CreatedAt time.Time
	Rows      int
	Failed    int
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a batch doesn't exist.
	ErrNotFound = errors.New("batch not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("batch store closed")

	// ErrInvalidBatch indicates a nil batch or one without an ID.
	ErrInvalidBatch = errors.New("invalid batch")
)

// NewBatchID returns a random batch identifier.
func NewBatchID() string {
	return uuid.NewString()
}

func validate(b *Batch) error {
	if b == nil || b.ID == "" {
		return ErrInvalidBatch
	}
	return nil
}
