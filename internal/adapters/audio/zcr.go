package audio

import "math"

// zcrThreshold treats values this close to zero as zero, which counts as positive.
const zcrThreshold = 1e-10

// zeroCrossingMean is the mean over centered frames of the fraction of sign
// changes. The signal is edge padded by frameLength/2 on both sides.
func zeroCrossingMean(samples []float64, frameLength, hop int) float64 {
	n := len(samples)
	frames := frameCount(n, hop)
	if frames == 0 {
		return 0
	}
	pad := frameLength / 2

	at := func(i int) bool {
		switch {
		case i < 0:
			i = 0
		case i >= n:
			i = n - 1
		}
		v := samples[i]
		if math.Abs(v) <= zcrThreshold {
			return false
		}
		return v < 0
	}

	var total float64
	for t := 0; t < frames; t++ {
		start := t*hop - pad
		crossings := 0
		prev := at(start)
		for k := 1; k < frameLength; k++ {
			cur := at(start + k)
			if cur != prev {
				crossings++
			}
			prev = cur
		}
		total += float64(crossings) / float64(frameLength)
	}
	return total / float64(frames)
}
