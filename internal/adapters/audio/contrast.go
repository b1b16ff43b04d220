package audio

import (
	"math"
	"sort"
)

const (
	contrastBands    = 6
	contrastFMin     = 200.0
	contrastQuantile = 0.02
)

// contrastBand selects the rfft bins of one octave band. The last bin is
// dropped from every band but the top one so neighbouring bands share a single edge.
type contrastBand struct {
	lo, hi int // bin range [lo, hi)
	q      int // number of bins averaged for peak and valley
}

// contrastLayout splits the spectrum into contrastBands+1 bands: [0, fmin],
// then octaves above fmin, the top band extending to Nyquist.
func contrastLayout(sampleRate, nFFT int) []contrastBand {
	freqs := fftFrequencies(sampleRate, nFFT)
	edges := make([]float64, contrastBands+2)
	for i := 1; i < len(edges); i++ {
		edges[i] = contrastFMin * math.Pow(2, float64(i-1))
	}

	bands := make([]contrastBand, contrastBands+1)
	for b := 0; b <= contrastBands; b++ {
		first, last := -1, -1
		for k, f := range freqs {
			if f >= edges[b] && f <= edges[b+1] {
				if first < 0 {
					first = k
				}
				last = k
			}
		}
		if first < 0 {
			continue
		}
		lo, hi := first, last+1
		if b > 0 && lo > 0 {
			lo--
		}
		if b == contrastBands {
			hi = len(freqs)
		}
		selected := hi - lo
		if b < contrastBands {
			hi--
		}
		q := int(math.RoundToEven(contrastQuantile * float64(selected)))
		if q < 1 {
			q = 1
		}
		bands[b] = contrastBand{lo: lo, hi: hi, q: q}
	}
	return bands
}

// contrastFrame writes the peak and valley magnitude of every band for one frame.
// scratch must hold at least nFFT/2+1 values.
func contrastFrame(bands []contrastBand, power, scratch, peak, valley []float64) {
	for b, band := range bands {
		n := band.hi - band.lo
		if n <= 0 {
			peak[b], valley[b] = 0, 0
			continue
		}
		sorted := scratch[:n]
		for i := 0; i < n; i++ {
			sorted[i] = math.Sqrt(power[band.lo+i])
		}
		sort.Float64s(sorted)

		q := band.q
		if q > n {
			q = n
		}
		var lowSum, highSum float64
		for i := 0; i < q; i++ {
			lowSum += sorted[i]
			highSum += sorted[n-1-i]
		}
		valley[b] = lowSum / float64(q)
		peak[b] = highSum / float64(q)
	}
}
