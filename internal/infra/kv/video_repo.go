package kv

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	domkv "github.com/bryanwahyu/truthlens/internal/domain/kv"
	domain "github.com/bryanwahyu/truthlens/internal/domain/video"
)

type VideoRepository struct {
	store domkv.Store
}

func NewVideoRepository(store domkv.Store) *VideoRepository {
	return &VideoRepository{store: store}
}

func (r *VideoRepository) Save(ctx context.Context, rec *domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "marshal video record")
	}
	return r.store.Set(ctx, rec.VideoID, data)
}

func (r *VideoRepository) Get(ctx context.Context, id string) (*domain.Record, error) {
	data, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "decode video %s", id)
	}
	return &rec, nil
}
