package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists batches to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite batch store.
// The path should be a file path (e.g., "./history.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			template TEXT NOT NULL,
			text TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batches_template
		ON batches(template)`,
		`CREATE TABLE IF NOT EXISTS batch_rows (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			output TEXT NOT NULL,
			error TEXT NOT NULL,
			PRIMARY KEY (batch_id, idx)
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(b *Batch) error {
	if err := validate(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM batch_rows WHERE batch_id = ?`, b.ID); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO batches (id, template, text, sequence, created_at)
		VALUES (
			?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM batches), 0) + 1,
			?
		)
		ON CONFLICT(id) DO UPDATE SET
			template = excluded.template,
			text = excluded.text,
			sequence = excluded.sequence,
			created_at = excluded.created_at
	`, b.ID, b.Template, b.Text, b.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO batch_rows (batch_id, idx, output, error)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save batch rows: %w", err)
	}
	defer stmt.Close()

	for _, r := range b.Rows {
		if _, err := stmt.Exec(b.ID, r.Index, r.Output, r.Error); err != nil {
			return fmt.Errorf("save batch row %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(id string) (*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	b := &Batch{ID: id}
	var createdAt string
	err := s.db.QueryRow(`
		SELECT template, text, created_at FROM batches
		WHERE id = ?
	`, id).Scan(&b.Template, &b.Text, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.Query(`
		SELECT idx, output, error FROM batch_rows
		WHERE batch_id = ?
		ORDER BY idx
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load batch rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Index, &r.Output, &r.Error); err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		b.Rows = append(b.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch rows: %w", err)
	}
	return b, nil
}

// List implements Store.
func (s *SQLiteStore) List(template string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT b.id, b.template, b.sequence, b.created_at,
			COUNT(r.idx),
			COALESCE(SUM(CASE WHEN r.error != '' THEN 1 ELSE 0 END), 0)
		FROM batches b
		LEFT JOIN batch_rows r ON r.batch_id = b.id
		WHERE ? = '' OR b.template = ?
		GROUP BY b.id
		ORDER BY b.sequence
	`, template, template)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var createdAt string
		if err := rows.Scan(&info.ID, &info.Template, &info.Sequence, &createdAt, &info.Rows, &info.Failed); err != nil {
			return nil, fmt.Errorf("scan batch info: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM batch_rows WHERE batch_id = ?`, id); err != nil {
		return fmt.Errorf("delete batch rows: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM batches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return tx.Commit()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
