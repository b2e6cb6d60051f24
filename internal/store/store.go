package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Records is the persistence boundary: a named collection mapped to a single
// JSON document, replaced wholesale on every change. Rapid successive writes
// only need last-write-wins semantics.
type Records interface {
	// Load returns the stored document, or ok=false when the collection has
	// never been saved.
	Load(ctx context.Context, name string) (doc json.RawMessage, ok bool, err error)
	Save(ctx context.Context, name string, doc json.RawMessage) error
}

// Collection names used by the application.
const (
	Patients     = "patients"
	Appointments = "appointments"
	Recipes      = "recipes"
)

type postgresStore struct {
	db *sql.DB
}

// New returns a Records backed by the collections table.
func New(db *sql.DB) Records {
	return &postgresStore{db: db}
}

func (s *postgresStore) Load(ctx context.Context, name string) (json.RawMessage, bool, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM collections WHERE name = $1`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load collection %q: %w", name, err)
	}
	return doc, true, nil
}

func (s *postgresStore) Save(ctx context.Context, name string, doc json.RawMessage) error {
	query := `
		INSERT INTO collections (name, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			doc = $2,
			updated_at = $3
	`
	if _, err := s.db.ExecContext(ctx, query, name, []byte(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("save collection %q: %w", name, err)
	}
	return nil
}
