package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ziadkadry99/learnhub/internal/db"
)

// SQLStore persists preferences for every visitor in the database.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore creates a SQLStore backed by the given database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

// Touch records that a visitor was seen, creating it if needed.
func (s *SQLStore) Touch(ctx context.Context, visitorID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (id) VALUES (?)
		ON CONFLICT(id) DO UPDATE SET last_seen = datetime('now')`, visitorID)
	if err != nil {
		return fmt.Errorf("touching visitor %s: %w", visitorID, err)
	}
	return nil
}

// For returns a Store scoped to one visitor.
func (s *SQLStore) For(visitorID string) Store {
	return &visitorStore{db: s.db, visitorID: visitorID}
}

type visitorStore struct {
	db        *db.DB
	visitorID string
}

func (v *visitorStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := v.db.GetContext(ctx, &value,
		"SELECT value FROM preferences WHERE visitor_id = ? AND key = ?", v.visitorID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (v *visitorStore) Set(ctx context.Context, key, value string) error {
	_, err := v.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(visitor_id, key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		v.visitorID, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (v *visitorStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM preferences WHERE visitor_id = ? AND key IN (?)", v.visitorID, keys)
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	if _, err := v.db.ExecContext(ctx, v.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("deleting keys: %w", err)
	}
	return nil
}
