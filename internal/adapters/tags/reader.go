// Package tags reads embedded ID3/RIFF metadata from uploaded files.
package tags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

// Reader implements ports.TagReader with github.com/dhowden/tag.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadTags returns the standard tags of the file. A file without tags yields
// empty TrackTags and no error.
func (r *Reader) ReadTags(path string) (domain.TrackTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.TrackTags{}, fmt.Errorf("tags: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	metadata, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return domain.TrackTags{}, nil
		}
		return domain.TrackTags{}, fmt.Errorf("tags: read: %w", err)
	}

	return domain.TrackTags{
		Title:  strings.TrimSpace(metadata.Title()),
		Artist: strings.TrimSpace(metadata.Artist()),
		Album:  strings.TrimSpace(metadata.Album()),
		Genre:  strings.TrimSpace(metadata.Genre()),
		Format: string(metadata.Format()),
	}, nil
}
