package audio

import "math"

const (
	chromaMinHz = 20.0
	tuningA4    = 440.0
)

// chromaBins maps every rfft bin to a pitch class (C=0 ... B=11), or -1 when
// the bin is below the audible range. Nearest-pitch-class folding at A440
// approximates a Gaussian chroma filterbank; tuning is not estimated.
func chromaBins(sampleRate, nFFT int) []int {
	freqs := fftFrequencies(sampleRate, nFFT)
	bins := make([]int, len(freqs))
	for k, f := range freqs {
		if f < chromaMinHz {
			bins[k] = -1
			continue
		}
		midi := 69 + 12*math.Log2(f/tuningA4)
		pc := int(math.Round(midi)) % 12
		if pc < 0 {
			pc += 12
		}
		bins[k] = pc
	}
	return bins
}

// foldChroma sums one power frame into 12 pitch classes and scales the frame
// so its largest class is 1. Silent frames stay at zero.
func foldChroma(bins []int, power []float64, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for k, pc := range bins {
		if pc >= 0 {
			dst[pc] += power[k]
		}
	}
	var peak float64
	for _, v := range dst {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return
	}
	for i := range dst {
		dst[i] /= peak
	}
}
