package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

const schema = "CREATE TABLE IF NOT EXISTS kv_store (" +
	"`key` VARCHAR(191) NOT NULL PRIMARY KEY, " +
	"`value` JSON NOT NULL" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

type Store struct {
	db *sql.DB
}

// Connect opens the pool, pings and ensures the kv_store table.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "mysql: open")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "mysql: ping")
	}
	if _, err := db.ExecContext(ctx2, schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "mysql: create kv_store")
	}
	return &Store{db: db}, nil
}

// Set insert/update satu key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const q = "INSERT INTO kv_store (`key`, `value`) VALUES (?, ?) " +
		"ON DUPLICATE KEY UPDATE `value` = VALUES(`value`)"
	if _, err := s.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return eris.Wrapf(err, "mysql: set %s", key)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, "SELECT `value` FROM kv_store WHERE `key` = ? LIMIT 1", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "mysql: get %s", key)
	}
	return v, nil
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT `value` FROM kv_store WHERE `key` LIKE ? ESCAPE '!'", likePrefix(prefix))
	if err != nil {
		return nil, eris.Wrapf(err, "mysql: scan prefix %s", prefix)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, eris.Wrap(err, "mysql: scan row")
		}
		out = append(out, v)
	}
	return out, eris.Wrap(rows.Err(), "mysql: rows")
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func likePrefix(prefix string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(prefix) + "%"
}
