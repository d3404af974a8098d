package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/davidenyagah/sema/pkg/api"
)

// PostgresProvider is a SessionProvider backed by PostgreSQL, with the
// same one-row-per-session JSON document layout as the SQLite backend.
//
// It expects an *sql.DB using any PostgreSQL driver; the caller imports
// the driver.
type PostgresProvider struct {
	db *sql.DB
}

var _ api.SessionProvider = (*PostgresProvider)(nil)

// NewPostgresProvider initializes the required schema in the given
// database and returns a new PostgresProvider.
func NewPostgresProvider(db *sql.DB) (*PostgresProvider, error) {
	p := &PostgresProvider{db: db}
	if err := p.initSchema(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PostgresProvider) initSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	)
	return err
}

func (p *PostgresProvider) Open(ctx context.Context, sessionID string) (api.SessionStore, error) {
	return &postgresStore{db: p.db, id: sessionID}, nil
}

type postgresStore struct {
	db *sql.DB
	id string
}

var _ api.SessionStore = (*postgresStore)(nil)

func (s *postgresStore) load(ctx context.Context) (map[string]any, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = $1`, s.id)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return map[string]any{}, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}

	data, err := DecodeDocument(raw)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *postgresStore) save(ctx context.Context, data map[string]any) error {
	raw, err := EncodeDocument(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		s.id, raw,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, key string) (any, error) {
	data, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value any) error {
	raw, err := EncodeValue(value)
	if err != nil {
		return err
	}
	decoded, err := DecodeValue(raw)
	if err != nil {
		return err
	}

	data, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	data[key] = decoded
	return s.save(ctx, data)
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	data, found, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(ctx, data)
}

func (s *postgresStore) Clear(ctx context.Context) error {
	_, found, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	return s.save(ctx, map[string]any{})
}

func (s *postgresStore) Destroy(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, s.id)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) Exists(ctx context.Context) (bool, error) {
	data, found, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return found && len(data) > 0, nil
}
