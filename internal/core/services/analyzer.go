package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
	"github.com/ewilliams-labs/enisai/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var (
	ErrEmptyFilename = errors.New("service: upload filename cannot be empty")
	ErrEmptyID       = errors.New("service: analysis id cannot be empty")
)

// Upload is an incoming audio file as received from the transport layer.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Options tunes the Analyzer.
type Options struct {
	// KeepUploads leaves stored files on disk after classification.
	KeepUploads bool
}

// Analyzer coordinates upload storage, feature extraction, classification and history.
type Analyzer struct {
	extractor ports.FeatureExtractor
	store     ports.UploadStore
	tags      ports.TagReader
	repo      ports.AnalysisRepository
	recorder  ports.AnalysisRecorder
	log       *zap.Logger
	opts      Options
}

// NewAnalyzer constructs an Analyzer. tags and recorder may be nil.
func NewAnalyzer(
	extractor ports.FeatureExtractor,
	store ports.UploadStore,
	tags ports.TagReader,
	repo ports.AnalysisRepository,
	recorder ports.AnalysisRecorder,
	log *zap.Logger,
	opts Options,
) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		extractor: extractor,
		store:     store,
		tags:      tags,
		repo:      repo,
		recorder:  recorder,
		log:       log,
		opts:      opts,
	}
}

// ClassifyUpload stores the upload, extracts its features and maps them to a label.
func (s *Analyzer) ClassifyUpload(ctx context.Context, up Upload) (domain.Analysis, error) {
	if up.Filename == "" {
		return domain.Analysis{}, ErrEmptyFilename
	}

	analysis, err := domain.NewAnalysis(uuid.NewString(), up.Filename)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service: %w", err)
	}

	// 1. Persist the raw upload
	stored, err := s.store.Save(ctx, up.Filename, up.Body)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service: failed to store upload: %w", err)
	}
	analysis.StoredName = stored.Name
	analysis.Size = stored.Size
	if !s.opts.KeepUploads {
		defer func() {
			if err := s.store.Remove(stored.Name); err != nil {
				s.log.Warn("service: failed to remove upload", zap.String("name", stored.Name), zap.Error(err))
			}
		}()
	}

	// 2. Embedded tags are informational only
	if s.tags != nil {
		tags, err := s.tags.ReadTags(stored.Path)
		if err != nil {
			s.log.Debug("service: no readable tags", zap.String("name", stored.Name), zap.Error(err))
		} else {
			analysis.Tags = tags
		}
	}

	// 3. Feature extraction
	features, err := s.extractor.Extract(ctx, stored.Path)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service: failed to extract features: %w", err)
	}
	analysis.Features = features

	// 4. Decision tree
	if err := analysis.Classify(); err != nil {
		return domain.Analysis{}, fmt.Errorf("service: failed to classify: %w", err)
	}

	if s.recorder != nil {
		s.recorder.Record(*analysis)
	}

	s.log.Info("service: classified upload",
		zap.String("id", analysis.ID),
		zap.String("filename", analysis.Filename),
		zap.String("label", string(analysis.Classification.Label)),
	)
	return *analysis, nil
}

// GetAnalysis loads a past classification.
func (s *Analyzer) GetAnalysis(ctx context.Context, id string) (domain.Analysis, error) {
	if id == "" {
		return domain.Analysis{}, ErrEmptyID
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service: failed to load analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses returns the most recent classifications, newest first.
func (s *Analyzer) ListAnalyses(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	list, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list analyses: %w", err)
	}
	return list, nil
}

// Catalog returns every label with its example songs.
func (s *Analyzer) Catalog() []domain.Classification {
	labels := domain.Labels()
	out := make([]domain.Classification, 0, len(labels))
	for _, label := range labels {
		songs, _ := domain.Songs(label)
		out = append(out, domain.Classification{Label: label, Songs: songs})
	}
	return out
}
