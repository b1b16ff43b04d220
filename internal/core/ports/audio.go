package ports

import (
	"context"
	"io"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

type FeatureExtractor interface {
	Extract(ctx context.Context, path string) (domain.FeatureSummary, error)
}

type TagReader interface {
	ReadTags(path string) (domain.TrackTags, error)
}

// StoredFile describes an upload written to the upload directory.
type StoredFile struct {
	Name string
	Path string
	Size int64
}

type UploadStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (StoredFile, error)
	Remove(name string) error
}
