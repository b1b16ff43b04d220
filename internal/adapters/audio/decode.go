// Package audio decodes uploaded audio files and computes clip-level spectral features.
package audio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

var (
	ErrUnsupportedFormat = fmt.Errorf("audio: %w", domain.ErrUnsupportedAudio)
	ErrNoSamples         = fmt.Errorf("audio: %w", domain.ErrEmptyAudio)
)

const (
	formatUnknown = ""
	formatMP3     = "mp3"
	formatWAV     = "wav"

	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Signal is a mono waveform in [-1, 1] at its native sample rate.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// DecodeFile loads path and downmixes it to mono without resampling.
func DecodeFile(path string) (Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("audio: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Signal{}, fmt.Errorf("audio: read header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Signal{}, fmt.Errorf("audio: rewind: %w", err)
	}

	var sig Signal
	switch detectFormat(header[:n], path) {
	case formatWAV:
		sig, err = decodeWAV(f)
	case formatMP3:
		sig, err = decodeMP3(bufio.NewReader(f))
	default:
		return Signal{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return Signal{}, err
	}
	if len(sig.Samples) == 0 || sig.SampleRate <= 0 {
		return Signal{}, ErrNoSamples
	}
	return sig, nil
}

// detectFormat sniffs the container from its magic bytes and falls back to the extension.
func detectFormat(header []byte, path string) string {
	switch {
	case len(header) >= 12 && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return formatWAV
	case len(header) >= 3 && bytes.Equal(header[0:3], []byte("ID3")):
		return formatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return formatMP3
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return formatMP3
	case ".wav", ".wave":
		return formatWAV
	}
	return formatUnknown
}

func decodeWAV(r io.ReadSeeker) (Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Signal{}, fmt.Errorf("%w: invalid wav file", ErrUnsupportedFormat)
	}
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return Signal{}, fmt.Errorf("%w: wav encoding %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Signal{}, fmt.Errorf("audio: wav decode failed: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return Signal{}, ErrNoSamples
	}

	channels := buf.Format.NumChannels
	bitDepth := int(d.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))
	offset := 0.0
	if bitDepth == 8 {
		// 8-bit PCM is unsigned
		offset = 128
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += (float64(buf.Data[i*channels+c]) - offset) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return Signal{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}

// decodeMP3 reads go-mp3 output, which is always 16-bit little-endian stereo.
func decodeMP3(r io.Reader) (Signal, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return Signal{}, fmt.Errorf("audio: mp3 decode failed: %w", err)
	}

	var samples []float64
	if length := decoder.Length(); length > 0 {
		samples = make([]float64, 0, length/4)
	}

	buf := make([]byte, 4096)
	var carry []byte
	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			chunk := append(carry, buf[:n]...)
			whole := len(chunk) - len(chunk)%4
			for i := 0; i < whole; i += 4 {
				left := int16(chunk[i]) | int16(chunk[i+1])<<8
				right := int16(chunk[i+2]) | int16(chunk[i+3])<<8
				samples = append(samples, (float64(left)+float64(right))/(2*32768.0))
			}
			carry = append(carry[:0], chunk[whole:]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return Signal{}, fmt.Errorf("audio: mp3 read failed: %w", err)
		}
	}

	return Signal{Samples: samples, SampleRate: decoder.SampleRate()}, nil
}
