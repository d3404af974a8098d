package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/davidenyagah/sema/pkg/api"
)

// SQLiteProvider is a SessionProvider backed by SQLite. Each session is
// one row holding a JSON document of its data map.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing the
// driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteProvider struct {
	db *sql.DB
}

var _ api.SessionProvider = (*SQLiteProvider)(nil)

// NewSQLiteProvider initializes the required schema in the given database
// and returns a new SQLiteProvider.
func NewSQLiteProvider(db *sql.DB) (*SQLiteProvider, error) {
	p := &SQLiteProvider{db: db}
	if err := p.initSchema(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SQLiteProvider) initSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
	)
	return err
}

func (p *SQLiteProvider) Open(ctx context.Context, sessionID string) (api.SessionStore, error) {
	return &sqliteStore{db: p.db, id: sessionID}, nil
}

type sqliteStore struct {
	db *sql.DB
	id string
}

var _ api.SessionStore = (*sqliteStore)(nil)

func (s *sqliteStore) load(ctx context.Context) (map[string]any, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, s.id)

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

func (s *sqliteStore) save(ctx context.Context, data map[string]any) error {
	raw, err := EncodeDocument(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, data, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.id, raw,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (any, error) {
	data, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value any) error {
	// JSON round-trip here so the value read back is shaped the same as
	// after a real store round-trip, regardless of write/read locality.
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

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
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

func (s *sqliteStore) Clear(ctx context.Context) error {
	_, found, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	return s.save(ctx, map[string]any{})
}

func (s *sqliteStore) Destroy(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, s.id)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Exists(ctx context.Context) (bool, error) {
	data, found, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return found && len(data) > 0, nil
}
