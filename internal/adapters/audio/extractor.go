package audio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

const (
	defaultNFFT  = 2048
	defaultHop   = 512
	defaultNMels = 128

	dbAmin = 1e-10
	dbTop  = 80.0
)

// Extractor computes MFCC, chroma, zero-crossing and spectral-contrast means.
type Extractor struct {
	nFFT  int
	hop   int
	nMels int
	log   *zap.Logger

	// decode is swapped in tests.
	decode func(path string) (Signal, error)
}

// NewExtractor returns an Extractor with the usual 2048/512 framing.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		nFFT:   defaultNFFT,
		hop:    defaultHop,
		nMels:  defaultNMels,
		log:    log,
		decode: DecodeFile,
	}
}

// Extract decodes the file at path and summarises it.
func (e *Extractor) Extract(ctx context.Context, path string) (domain.FeatureSummary, error) {
	started := time.Now()
	sig, err := e.decode(path)
	if err != nil {
		return domain.FeatureSummary{}, err
	}

	summary, err := e.Summarize(ctx, sig)
	if err != nil {
		return domain.FeatureSummary{}, err
	}

	e.log.Debug("audio: extracted features",
		zap.Int("sample_rate", sig.SampleRate),
		zap.Float64("duration_s", sig.Duration()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

// Summarize computes the feature summary of an already decoded signal.
func (e *Extractor) Summarize(ctx context.Context, sig Signal) (domain.FeatureSummary, error) {
	if len(sig.Samples) == 0 || sig.SampleRate <= 0 {
		return domain.FeatureSummary{}, ErrNoSamples
	}

	melFB := melFilterbank(sig.SampleRate, e.nFFT, e.nMels)
	pcBins := chromaBins(sig.SampleRate, e.nFFT)
	bands := contrastLayout(sig.SampleRate, e.nFFT)

	frames := frameCount(len(sig.Samples), e.hop)
	melFrames := make([][]float64, 0, frames)
	peaks := make([][]float64, 0, frames)
	valleys := make([][]float64, 0, frames)

	var chromaSum [domain.PitchClassBins]float64
	chroma := make([]float64, domain.PitchClassBins)
	scratch := make([]float64, e.nFFT/2+1)

	err := eachPowerFrame(ctx, sig.Samples, e.nFFT, e.hop, func(power []float64) {
		melFrames = append(melFrames, applyFilterbank(melFB, power, nil))

		foldChroma(pcBins, power, chroma)
		for i, v := range chroma {
			chromaSum[i] += v
		}

		peak := make([]float64, len(bands))
		valley := make([]float64, len(bands))
		contrastFrame(bands, power, scratch, peak, valley)
		peaks = append(peaks, peak)
		valleys = append(valleys, valley)
	})
	if err != nil {
		return domain.FeatureSummary{}, fmt.Errorf("audio: stft: %w", err)
	}
	if len(melFrames) == 0 {
		return domain.FeatureSummary{}, ErrNoSamples
	}
	n := float64(len(melFrames))

	var out domain.FeatureSummary

	// MFCC: log-mel then DCT, averaged per coefficient
	powerToDB(melFrames, dbAmin, dbTop)
	basis := dctBasis(e.nMels, domain.TimbralBins)
	for _, frame := range melFrames {
		for i, c := range dctII(frame, basis) {
			out.TimbralMean[i] += c
		}
	}
	for i := range out.TimbralMean {
		out.TimbralMean[i] /= n
	}

	for i := range out.PitchClassMean {
		out.PitchClassMean[i] = chromaSum[i] / n
	}

	out.ZeroCrossingMean = zeroCrossingMean(sig.Samples, e.nFFT, e.hop)

	powerToDB(peaks, dbAmin, dbTop)
	powerToDB(valleys, dbAmin, dbTop)
	out.ContrastMean = make([]float64, len(bands))
	for b, band := range bands {
		if band.hi <= band.lo {
			continue
		}
		var sum float64
		for t := range peaks {
			sum += peaks[t][b] - valleys[t][b]
		}
		out.ContrastMean[b] = sum / n
	}

	return out, nil
}
