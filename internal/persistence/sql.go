package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps items in the metadata table created by storage.Migrate.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	q := s.db.Rebind(`SELECT value FROM metadata WHERE key_name = ?`)
	err := s.db.GetContext(ctx, &value, q, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) SetItem(ctx context.Context, key, value string) error {
	q := s.db.Rebind(`
		INSERT INTO metadata (key_name, value)
		VALUES (?, ?)
		ON CONFLICT (key_name) DO UPDATE SET value = excluded.value
	`)
	res, err := s.db.ExecContext(ctx, q, key, value)
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set item %q: rows affected: %w", key, err)
	}
	if affected == 0 {
		return fmt.Errorf("set item %q: no rows affected", key)
	}
	return nil
}
