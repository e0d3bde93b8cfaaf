package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrRowStoreNotMigrated is returned when the tournament_rows table is missing.
var ErrRowStoreNotMigrated = errors.New("tournament_rows table does not exist, run migrations")

type postgresRowStore struct {
	db *sql.DB
}

func NewPostgresRowStore(db *sql.DB) RowStore {
	return &postgresRowStore{db: db}
}

func (s *postgresRowStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM tournament_rows WHERE name = $1`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRowNotFound
		}
		return nil, handleRowError(err)
	}
	return payload, nil
}

func (s *postgresRowStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO tournament_rows (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return handleRowError(err)
	}
	return nil
}

func (s *postgresRowStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM tournament_rows WHERE name = $1`

	result, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return handleRowError(err)
	}
	return checkAffectedRows(result, ErrRowNotFound)
}

func (s *postgresRowStore) Keys(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM tournament_rows ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, handleRowError(err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row name: %w", err)
		}
		keys = append(keys, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return keys, nil
}

func handleRowError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ErrRowStoreNotMigrated, pqErr.Message)
	}
	return fmt.Errorf("tournament row query failed: %w", err)
}
