// Package storage keeps uploaded audio files on the local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/ewilliams-labs/enisai/internal/core/ports"
)

const fallbackName = "upload"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Local writes uploads into a single directory.
type Local struct {
	dir string
}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir is the upload directory.
func (l *Local) Dir() string {
	return l.dir
}

// Save streams r to a new file named after a sanitized filename with a unique prefix.
func (l *Local) Save(ctx context.Context, filename string, r io.Reader) (ports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return ports.StoredFile{}, err
	}

	name := uuid.NewString() + "_" + SanitizeFilename(filename)
	path := filepath.Join(l.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return ports.StoredFile{}, fmt.Errorf("storage: create %s: %w", name, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ports.StoredFile{}, fmt.Errorf("storage: write %s: %w", name, err)
	}

	return ports.StoredFile{Name: name, Path: path, Size: n}, nil
}

// Remove deletes a stored upload. Missing files are not an error.
func (l *Local) Remove(name string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", name, err)
	}
	return nil
}

// SanitizeFilename reduces a client supplied name to a safe ASCII basename:
// accents are stripped, path separators and whitespace become underscores,
// anything outside [A-Za-z0-9_.-] is dropped and leading or trailing dots and
// underscores are trimmed.
func SanitizeFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	ascii := strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())

	joined := strings.Join(strings.Fields(ascii), "_")
	cleaned := strings.Trim(unsafeChars.ReplaceAllString(joined, ""), "._")
	if cleaned == "" {
		return fallbackName
	}
	return cleaned
}
