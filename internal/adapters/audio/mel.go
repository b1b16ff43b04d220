package audio

import "math"

// Slaney mel scale constants: linear below 1 kHz, logarithmic above.
const (
	melFSp       = 200.0 / 3
	melMinLogHz  = 1000.0
	melMinLogMel = melMinLogHz / melFSp
)

var melLogStep = math.Log(6.4) / 27.0

func hzToMel(hz float64) float64 {
	if hz < melMinLogHz {
		return hz / melFSp
	}
	return melMinLogMel + math.Log(hz/melMinLogHz)/melLogStep
}

func melToHz(mel float64) float64 {
	if mel < melMinLogMel {
		return mel * melFSp
	}
	return melMinLogHz * math.Exp(melLogStep*(mel-melMinLogMel))
}

// melFilterbank builds nMels triangular filters over [0, sampleRate/2] with
// area normalization, shaped nMels x (nFFT/2+1).
func melFilterbank(sampleRate, nFFT, nMels int) [][]float64 {
	fftFreqs := fftFrequencies(sampleRate, nFFT)

	minMel := hzToMel(0)
	maxMel := hzToMel(float64(sampleRate) / 2)
	melF := make([]float64, nMels+2)
	for i := range melF {
		melF[i] = melToHz(minMel + (maxMel-minMel)*float64(i)/float64(nMels+1))
	}

	weights := make([][]float64, nMels)
	for i := 0; i < nMels; i++ {
		row := make([]float64, len(fftFreqs))
		lowDiff := melF[i+1] - melF[i]
		highDiff := melF[i+2] - melF[i+1]
		enorm := 2.0 / (melF[i+2] - melF[i])
		for k, f := range fftFreqs {
			lower := (f - melF[i]) / lowDiff
			upper := (melF[i+2] - f) / highDiff
			w := math.Min(lower, upper)
			if w > 0 {
				row[k] = w * enorm
			}
		}
		weights[i] = row
	}
	return weights
}

// applyFilterbank projects one power frame onto the filterbank.
func applyFilterbank(fb [][]float64, power []float64, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(fb))
	}
	for i, row := range fb {
		var sum float64
		for k, w := range row {
			if w != 0 {
				sum += w * power[k]
			}
		}
		dst[i] = sum
	}
	return dst
}

// dctII computes one coefficient of the orthonormal DCT-II of x per basis row.
func dctII(x []float64, basis [][]float64) []float64 {
	out := make([]float64, len(basis))
	for k := range basis {
		var sum float64
		for n, v := range x {
			sum += v * basis[k][n]
		}
		out[k] = sum
	}
	return out
}

// dctBasis precomputes the orthonormal DCT-II matrix rows for n inputs.
func dctBasis(n, nOut int) [][]float64 {
	basis := make([][]float64, nOut)
	for k := 0; k < nOut; k++ {
		scale := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(n))
		}
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(n)))
		}
		basis[k] = row
	}
	return basis
}
