package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

const testRate = 22050

func tone(freq float64, seconds float64, amp float64) []float64 {
	n := int(seconds * testRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/testRate)
	}
	return out
}

// writeWAV encodes samples as 16-bit PCM with the given channel count.
func writeWAV(t *testing.T, path string, samples []float64, channels int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	data := make([]int, 0, len(samples)*channels)
	for _, s := range samples {
		v := int(s * 32767)
		for c := 0; c < channels; c++ {
			data = append(data, v)
		}
	}

	enc := wav.NewEncoder(f, testRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: testRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func TestExtractor_Summarize_Tone(t *testing.T) {
	e := NewExtractor(nil)
	got, err := e.Summarize(context.Background(), Signal{Samples: tone(440, 1, 0.5), SampleRate: testRate})
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	assert.Equal(t, 9, argmax(got.PitchClassMean[:]), "A440 should land on pitch class A")
	assert.Len(t, got.ContrastMean, contrastBands+1)
	for _, v := range got.PitchClassMean {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	// A 440 Hz sine crosses zero 880 times a second.
	assert.InDelta(t, 880.0/testRate, got.ZeroCrossingMean, 0.01)
}

func TestExtractor_Summarize_Silence(t *testing.T) {
	e := NewExtractor(nil)
	got, err := e.Summarize(context.Background(), Signal{Samples: make([]float64, testRate), SampleRate: testRate})
	require.NoError(t, err)

	assert.Equal(t, 0.0, got.ZeroCrossingMean)
	for _, v := range got.PitchClassMean {
		assert.Equal(t, 0.0, v)
	}
	for _, v := range got.ContrastMean {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
	// Every mel band sits at the -100 dB floor, so only c0 is non-zero.
	assert.InDelta(t, -100*math.Sqrt(defaultNMels), got.TimbralMean[0], 1e-6)
	for i := 1; i < domain.TimbralBins; i++ {
		assert.InDelta(t, 0.0, got.TimbralMean[i], 1e-6)
	}
	assert.Equal(t, domain.LabelSadMelancholic, domain.Classify(got).Label)
}

func TestExtractor_Summarize_Errors(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Summarize(context.Background(), Signal{SampleRate: testRate})
	assert.ErrorIs(t, err, ErrNoSamples)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Summarize(ctx, Signal{Samples: tone(440, 0.5, 0.5), SampleRate: testRate})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor_Extract_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, tone(261.63, 1, 0.4), 2)

	e := NewExtractor(nil)
	got, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, argmax(got.PitchClassMean[:]), "middle C should land on pitch class C")
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	stereo := filepath.Join(dir, "stereo.wav")
	writeWAV(t, stereo, tone(440, 0.25, 0.5), 2)
	sig, err := DecodeFile(stereo)
	require.NoError(t, err)
	assert.Equal(t, testRate, sig.SampleRate)
	assert.Len(t, sig.Samples, len(tone(440, 0.25, 0.5)))
	assert.InDelta(t, 0.25, sig.Duration(), 1e-3)
	for _, s := range sig.Samples {
		require.LessOrEqual(t, math.Abs(s), 1.0)
	}

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("definitely not audio"), 0o600))
	_, err = DecodeFile(text)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAudio)

	_, err = DecodeFile(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)
}

func TestDecodeFile_MP3(t *testing.T) {
	path := filepath.Join("testdata", "sample.mp3")

	sig, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, sig.SampleRate)
	assert.InDelta(t, 3.45, sig.Duration(), 0.1)

	var peak float64
	for _, s := range sig.Samples {
		require.LessOrEqual(t, math.Abs(s), 1.0)
		peak = math.Max(peak, math.Abs(s))
	}
	assert.Greater(t, peak, 0.1, "decoded clip should not be silent")

	got, err := NewExtractor(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	assert.Len(t, got.ContrastMean, contrastBands+1)
	assert.Greater(t, got.ContrastLevel(), 0.0)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		want   string
	}{
		{name: "riff wave", header: []byte("RIFF\x00\x00\x00\x00WAVE"), path: "x.bin", want: formatWAV},
		{name: "id3 tag", header: []byte("ID3\x04\x00\x00\x00\x00\x00\x00\x00\x00"), path: "x.bin", want: formatMP3},
		{name: "mpeg frame sync", header: []byte{0xFF, 0xFB, 0x90, 0x64}, path: "x.bin", want: formatMP3},
		{name: "extension fallback mp3", header: []byte("????"), path: "SONG.MP3", want: formatMP3},
		{name: "extension fallback wav", header: nil, path: "take.wav", want: formatWAV},
		{name: "unknown", header: []byte("fLaC"), path: "track.flac", want: formatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, detectFormat(tc.header, tc.path))
		})
	}
}

func TestZeroCrossingMean(t *testing.T) {
	constant := make([]float64, testRate)
	for i := range constant {
		constant[i] = 0.3
	}
	assert.Equal(t, 0.0, zeroCrossingMean(constant, defaultNFFT, defaultHop))

	alternating := make([]float64, testRate)
	for i := range alternating {
		alternating[i] = 0.5
		if i%2 == 1 {
			alternating[i] = -0.5
		}
	}
	assert.Greater(t, zeroCrossingMean(alternating, defaultNFFT, defaultHop), 0.9)

	assert.Equal(t, 0.0, zeroCrossingMean(nil, defaultNFFT, defaultHop))
}

func TestMelScale(t *testing.T) {
	assert.InDelta(t, 15.0, hzToMel(1000), 1e-9)
	for _, hz := range []float64{0, 100, 999, 1000, 4000, 11025} {
		assert.InDelta(t, hz, melToHz(hzToMel(hz)), 1e-6)
	}

	fb := melFilterbank(testRate, defaultNFFT, defaultNMels)
	require.Len(t, fb, defaultNMels)
	for i, row := range fb {
		var sum float64
		for _, w := range row {
			require.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		assert.Greater(t, sum, 0.0, "mel band %d has no weight", i)
	}
}

func TestChromaBins(t *testing.T) {
	bins := chromaBins(testRate, defaultNFFT)
	assert.Equal(t, -1, bins[0])

	hzPerBin := float64(testRate) / defaultNFFT
	assert.Equal(t, 9, bins[int(math.Round(440/hzPerBin))])
	assert.Equal(t, 0, bins[int(math.Round(1046.5/hzPerBin))])
}

func TestContrastLayout(t *testing.T) {
	bands := contrastLayout(44100, defaultNFFT)
	require.Len(t, bands, contrastBands+1)
	for i, b := range bands {
		assert.Less(t, b.lo, b.hi, "band %d empty", i)
		assert.GreaterOrEqual(t, b.q, 1)
	}
	assert.Equal(t, 0, bands[0].lo)
	assert.Equal(t, defaultNFFT/2+1, bands[contrastBands].hi)

	// Low sample rates leave the upper octaves empty instead of failing.
	narrow := contrastLayout(8000, defaultNFFT)
	assert.Equal(t, narrow[contrastBands].lo, narrow[contrastBands].hi)
}
