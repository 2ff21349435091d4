package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

const scanCount = 100

// Store maps keys one to one onto redis string keys.
type Store struct {
	client *goredis.Client
}

// Connect accepts a redis:// URL or a bare host:port.
func Connect(ctx context.Context, url string) (*Store, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		opt = &goredis.Options{Addr: url}
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "redis: ping")
	}
	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(c *goredis.Client) *Store { return &Store{client: c} }

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return eris.Wrapf(s.client.Set(ctx, key, value, 0).Err(), "redis: set %s", key)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "redis: get %s", key)
	}
	return v, nil
}

// GetByPrefix walks the keyspace with SCAN, then fetches values with MGET.
// Keys deleted between the two calls are skipped.
func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, eris.Wrapf(err, "redis: scan %s", prefix)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, eris.Wrap(err, "redis: mget")
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok {
			out = append(out, []byte(str))
		}
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *Store) Close() error { return s.client.Close() }

// escapeGlob quotes the glob metacharacters SCAN MATCH understands.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
