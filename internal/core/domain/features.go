package domain

import (
	"errors"
	"fmt"
	"math"
)

const (
	// TimbralBins is the number of MFCC coefficients kept per frame.
	TimbralBins = 13
	// PitchClassBins is the number of chroma bins (one per semitone class).
	PitchClassBins = 12
)

var ErrNonFiniteFeature = errors.New("domain: non-finite feature value")

// FeatureSummary holds the clip-averaged spectral statistics of one upload.
type FeatureSummary struct {
	TimbralMean      [TimbralBins]float64    `json:"mfcc_mean"`
	PitchClassMean   [PitchClassBins]float64 `json:"chroma_mean"`
	ZeroCrossingMean float64                 `json:"zcr_mean"`
	ContrastMean     []float64               `json:"contrast_mean"`
}

// Validate reports the first NaN or Inf value found in the summary.
func (f FeatureSummary) Validate() error {
	for i, v := range f.TimbralMean {
		if !finite(v) {
			return fmt.Errorf("%w: mfcc_mean[%d]=%v", ErrNonFiniteFeature, i, v)
		}
	}
	for i, v := range f.PitchClassMean {
		if !finite(v) {
			return fmt.Errorf("%w: chroma_mean[%d]=%v", ErrNonFiniteFeature, i, v)
		}
	}
	if !finite(f.ZeroCrossingMean) {
		return fmt.Errorf("%w: zcr_mean=%v", ErrNonFiniteFeature, f.ZeroCrossingMean)
	}
	for i, v := range f.ContrastMean {
		if !finite(v) {
			return fmt.Errorf("%w: contrast_mean[%d]=%v", ErrNonFiniteFeature, i, v)
		}
	}
	return nil
}

// TimbralEnergy is the mean over all MFCC coefficients.
func (f FeatureSummary) TimbralEnergy() float64 {
	return mean(f.TimbralMean[:])
}

// PitchClassEnergy is the mean chroma value.
func (f FeatureSummary) PitchClassEnergy() float64 {
	return mean(f.PitchClassMean[:])
}

// ContrastLevel is the mean spectral contrast across bands.
func (f FeatureSummary) ContrastLevel() float64 {
	return mean(f.ContrastMean)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
