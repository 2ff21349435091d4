package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`

// Store is a single-file key-value table, handy for local runs.
type Store struct {
	db *sql.DB
}

// Open creates the database file when needed. Use ":memory:" in tests.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: open %s", path)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "sqlite: busy_timeout")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "sqlite: create kv_store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO kv_store (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;`
	if _, err := s.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return eris.Wrapf(err, "sqlite: set %s", key)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get %s", key)
	}
	return []byte(v), nil
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM kv_store WHERE key LIKE ? ESCAPE '!'`, likePrefix(prefix))
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: scan prefix %s", prefix)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		out = append(out, []byte(v))
	}
	return out, eris.Wrap(rows.Err(), "sqlite: rows")
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func likePrefix(prefix string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(prefix) + "%"
}
