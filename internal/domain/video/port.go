package video

import (
	"context"
)

// Repository port untuk video metadata
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
}

// ArtifactStore port untuk penyimpanan script video
type ArtifactStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
