// Package beepaudio implements ports.AudioService with gopxl/beep.
// Decoding is pure Go; output needs the platform speaker, see AudioAvailable.
package beepaudio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// SupportedFormats lists the file extensions the engine decodes.
var SupportedFormats = []string{".mp3", ".wav"}

// clip is one decoded audio file.
type clip struct {
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// openClip opens and decodes the file at path.
func openClip(path string) (*clip, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewAudioEngineError("load", path, "file not found", domain.ErrFileNotFound)
		}
		return nil, domain.NewAudioEngineError("load", path, "cannot open file", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	default:
		_ = file.Close()
		return nil, domain.NewAudioEngineError("load", path, "unsupported format", domain.ErrUnsupportedFormat)
	}
	if err != nil {
		_ = file.Close()
		return nil, domain.NewAudioEngineError("load", path, "decode failed", err)
	}

	return &clip{path: path, file: file, streamer: streamer, format: format}, nil
}

// MeasureDuration decodes the header of the clip behind handle and returns its length.
func MeasureDuration(handle domain.ResourceHandle) (time.Duration, error) {
	if handle == domain.NoResource || handle.IsTagArtwork() {
		return 0, domain.ErrInvalidResource
	}

	c, err := openClip(handle.Path())
	if err != nil {
		return 0, err
	}
	defer c.Close()

	return c.Duration(), nil
}

// Duration returns the clip length.
func (c *clip) Duration() time.Duration {
	return c.format.SampleRate.D(c.streamer.Len())
}

// Position returns the decoder position.
func (c *clip) Position() time.Duration {
	return c.format.SampleRate.D(c.streamer.Position())
}

// Seek moves the decoder to d, which must lie within [0, Duration].
func (c *clip) Seek(d time.Duration) error {
	if d < 0 || d > c.Duration() {
		return domain.ErrInvalidPosition
	}

	samples := min(c.format.SampleRate.N(d), c.streamer.Len())
	if err := c.streamer.Seek(samples); err != nil {
		return domain.NewAudioEngineError("seek", c.path, "seek failed", err)
	}
	return nil
}

// Close releases the decoder and the file.
func (c *clip) Close() {
	_ = c.streamer.Close()
	_ = c.file.Close()
}
