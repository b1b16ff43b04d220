package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("domain: not found")

	// Reported by feature extractors.
	ErrUnsupportedAudio = errors.New("domain: unsupported audio format")
	ErrEmptyAudio       = errors.New("domain: audio contains no samples")
)

// Analysis is the record of one classified upload.
type Analysis struct {
	ID             string         `json:"id"`
	Filename       string         `json:"filename"`
	StoredName     string         `json:"stored_name"`
	Size           int64          `json:"size"`
	Tags           TrackTags      `json:"tags"`
	Features       FeatureSummary `json:"features"`
	Classification Classification `json:"classification"`
	CreatedAt      time.Time      `json:"created_at"`
}

func NewAnalysis(id, filename string) (*Analysis, error) {
	if id == "" || filename == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Analysis{
		ID:        id,
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Classify runs the decision tree on the stored features and keeps the result.
// Non-finite features are rejected and leave the analysis unchanged.
func (a *Analysis) Classify() error {
	if err := a.Features.Validate(); err != nil {
		return err
	}
	a.Classification = Classify(a.Features)
	return nil
}
