package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		filename string
		wantErr  bool
	}{
		{name: "valid", id: "a-1", filename: "song.mp3"},
		{name: "missing id", id: "", filename: "song.mp3", wantErr: true},
		{name: "missing filename", id: "a-1", filename: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAnalysis(tc.id, tc.filename)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got analysis %+v", a)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.CreatedAt.IsZero() {
				t.Fatalf("expected CreatedAt to be set")
			}
		})
	}
}

func TestAnalysis_Classify(t *testing.T) {
	a, err := NewAnalysis("a-1", "song.wav")
	if err != nil {
		t.Fatalf("new analysis: %v", err)
	}
	a.Features = summary(-60, 0, 0, 0)

	if err := a.Classify(); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Classification.Label != LabelSadMelancholic {
		t.Fatalf("expected %q, got %q", LabelSadMelancholic, a.Classification.Label)
	}

	bad, _ := NewAnalysis("a-2", "broken.wav")
	bad.Features.ZeroCrossingMean = math.NaN()
	if err := bad.Classify(); !errors.Is(err, ErrNonFiniteFeature) {
		t.Fatalf("expected ErrNonFiniteFeature, got %v", err)
	}
	if bad.Classification.Label != "" {
		t.Fatalf("expected no label after failed classify, got %q", bad.Classification.Label)
	}
}

func TestSentinelErrors_DomainPrefix(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrNonFiniteFeature, ErrUnsupportedAudio, ErrEmptyAudio} {
		if !strings.HasPrefix(err.Error(), "domain: ") {
			t.Errorf("expected %q to carry the domain prefix", err)
		}
	}
}
