package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
  key   TEXT PRIMARY KEY,
  value JSONB NOT NULL
);`

// Store persists values in a single jsonb table, the same shape the hosted
// backend used.
type Store struct {
	db *sql.DB
}

// Open connects, pings and makes sure kv_store exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: open")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	if _, err := db.ExecContext(ctx2, schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: create kv_store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO kv_store (key, value) VALUES ($1, $2::jsonb)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`
	if _, err := s.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return eris.Wrapf(err, "postgres: set %s", key)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get %s", key)
	}
	return []byte(v), nil
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value::text FROM kv_store WHERE key LIKE $1 ESCAPE '!'`, likePrefix(prefix))
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: scan prefix %s", prefix)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, eris.Wrap(err, "postgres: scan row")
		}
		out = append(out, []byte(v))
	}
	return out, eris.Wrap(rows.Err(), "postgres: rows")
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// likePrefix escapes LIKE wildcards with '!' and appends %.
func likePrefix(prefix string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(prefix) + "%"
}
