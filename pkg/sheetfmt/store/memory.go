package store

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory batch store for testing and one-shot runs.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	batches map[string]storedBatch
	seq     int
	closed  bool
}

type storedBatch struct {
	batch    Batch
	sequence int
}

// NewMemoryStore creates a new in-memory batch store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches: make(map[string]storedBatch),
	}
}

// copyBatch copies b so callers never share rows with the store.
func copyBatch(b *Batch) Batch {
	c := *b
	c.Rows = append([]Row(nil), b.Rows...)
	return c
}

// Save implements Store.
func (m *MemoryStore) Save(b *Batch) error {
	if err := validate(b); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	m.batches[b.ID] = storedBatch{batch: copyBatch(b), sequence: m.seq}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (*Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	stored, ok := m.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	b := copyBatch(&stored.batch)
	return &b, nil
}

// List implements Store.
func (m *MemoryStore) List(template string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.batches))
	for _, stored := range m.batches {
		b := stored.batch
		if template != "" && b.Template != template {
			continue
		}
		infos = append(infos, Info{
			ID:        b.ID,
			Template:  b.Template,
			Sequence:  stored.sequence,
			CreatedAt: b.CreatedAt,
			Rows:      len(b.Rows),
			Failed:    b.Failed(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.batches, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of stored batches.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.batches)
}
