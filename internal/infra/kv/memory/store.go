package memory

import (
	"context"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bryanwahyu/truthlens/internal/domain/kv"
)

// Store keeps values in process memory. Nothing expires; data is lost on
// restart.
type Store struct {
	cache *gocache.Cache
}

func New() *Store {
	return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.cache.Set(key, clone(value), gocache.NoExpiration)
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, kv.ErrNotFound
	}
	return clone(v.([]byte)), nil
}

func (s *Store) GetByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	var out [][]byte
	for k, item := range s.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, clone(item.Object.([]byte)))
		}
	}
	return out, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error {
	s.cache.Flush()
	return nil
}

// callers must not be able to mutate stored bytes
func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
