package audio

import (
	"context"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ctxCheckEvery is how many frames pass between cancellation checks.
const ctxCheckEvery = 64

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// frameCount is the number of centered frames for a signal of length n.
func frameCount(n, hop int) int {
	if n <= 0 {
		return 0
	}
	return 1 + n/hop
}

// eachPowerFrame runs a centered STFT over samples (zero padded by nFFT/2 on
// both sides) and hands the power spectrum of every frame to fn. The slice
// passed to fn is reused between calls.
func eachPowerFrame(ctx context.Context, samples []float64, nFFT, hop int, fn func(power []float64)) error {
	fft := fourier.NewFFT(nFFT)
	win := hann(nFFT)
	pad := nFFT / 2

	frames := frameCount(len(samples), hop)
	buf := make([]float64, nFFT)
	coeffs := make([]complex128, nFFT/2+1)
	power := make([]float64, nFFT/2+1)

	for t := 0; t < frames; t++ {
		if t%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		start := t*hop - pad
		for k := 0; k < nFFT; k++ {
			idx := start + k
			if idx >= 0 && idx < len(samples) {
				buf[k] = samples[idx] * win[k]
			} else {
				buf[k] = 0
			}
		}

		coeffs = fft.Coefficients(coeffs, buf)
		for k, c := range coeffs {
			mag := cmplx.Abs(c)
			power[k] = mag * mag
		}
		fn(power)
	}
	return nil
}

// fftFrequencies returns the center frequency of each rfft bin.
func fftFrequencies(sampleRate, nFFT int) []float64 {
	freqs := make([]float64, nFFT/2+1)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(nFFT)
	}
	return freqs
}

// powerToDB converts power values to decibels in place: 10*log10(max(amin, x)),
// floored at topDB below the overall maximum.
func powerToDB(values [][]float64, amin, topDB float64) {
	maxDB := math.Inf(-1)
	for _, row := range values {
		for i, v := range row {
			db := 10 * math.Log10(math.Max(amin, v))
			row[i] = db
			if db > maxDB {
				maxDB = db
			}
		}
	}
	floor := maxDB - topDB
	for _, row := range values {
		for i, v := range row {
			if v < floor {
				row[i] = floor
			}
		}
	}
}
