//go:build !((linux && cgo) || windows || darwin)

package beepaudio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio output requires cgo on Linux.
const AudioAvailable = false

// Engine decodes clips but cannot play them. Play returns domain.ErrAudioUnavailable.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu   sync.Mutex
	clip *clip
}

// NewEngine creates a new silent engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With(slog.String("component", "beep-engine"))}
}

// Load replaces the current clip. A failed load leaves nothing loaded.
func (e *Engine) Load(handle domain.ResourceHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unloadLocked()

	if handle == domain.NoResource || handle.IsTagArtwork() {
		return domain.ErrInvalidResource
	}

	c, err := openClip(handle.Path())
	if err != nil {
		return err
	}
	e.clip = c
	return nil
}

// Play always fails in this build.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	return domain.NewAudioEngineError("play", e.clip.path, "no audio output", domain.ErrAudioUnavailable)
}

// Pause is accepted and does nothing.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	return nil
}

// Position returns the decoder position.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return 0
	}
	return e.clip.Position()
}

// SetPosition moves the decoder position.
func (e *Engine) SetPosition(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	return e.clip.Seek(position)
}

// Duration returns the clip length.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return 0
	}
	return e.clip.Duration()
}

// IsPlaying is always false in this build.
func (e *Engine) IsPlaying() bool {
	return false
}

// Loaded reports whether a clip is loaded.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clip != nil
}

// Close releases the clip.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unloadLocked()
	return nil
}

func (e *Engine) unloadLocked() {
	if e.clip != nil {
		e.clip.Close()
		e.clip = nil
	}
}

var _ ports.AudioService = (*Engine)(nil)
