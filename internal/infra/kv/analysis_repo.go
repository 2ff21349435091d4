package kv

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"

	domain "github.com/bryanwahyu/truthlens/internal/domain/analysis"
	domkv "github.com/bryanwahyu/truthlens/internal/domain/kv"
)

const analysisPrefix = "analysis_"

// AnalysisRepository stores records as JSON under their id.
type AnalysisRepository struct {
	store domkv.Store
}

func NewAnalysisRepository(store domkv.Store) *AnalysisRepository {
	return &AnalysisRepository{store: store}
}

func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "marshal analysis record")
	}
	return r.store.Set(ctx, string(rec.ID), data)
}

func (r *AnalysisRepository) Get(ctx context.Context, id domain.ID) (*domain.Record, error) {
	data, err := r.store.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "decode analysis %s", id)
	}
	return &rec, nil
}

// Recent sorts by timestamp, newest first, and keeps RecentLimit. Values
// that fail to decode are skipped.
func (r *AnalysisRepository) Recent(ctx context.Context) ([]*domain.Record, error) {
	raw, err := r.store.GetByPrefix(ctx, analysisPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Record, 0, len(raw))
	for _, data := range raw {
		var rec domain.Record
		if json.Unmarshal(data, &rec) != nil {
			continue
		}
		out = append(out, &rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > domain.RecentLimit {
		out = out[:domain.RecentLimit]
	}
	return out, nil
}
