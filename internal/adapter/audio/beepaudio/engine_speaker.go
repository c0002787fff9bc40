//go:build (linux && cgo) || windows || darwin

package beepaudio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// SampleRate is the speaker output rate. Clips are resampled to it.
const SampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Engine plays one clip at a time through the speaker.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu    sync.Mutex
	clip  *clip
	ctrl  *beep.Ctrl
	ended atomic.Bool
}

// NewEngine creates a new speaker engine. The speaker is opened on the first Load.
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
	if err := initSpeaker(); err != nil {
		return domain.NewAudioEngineError("init", "", "speaker unavailable", err)
	}

	c, err := openClip(handle.Path())
	if err != nil {
		return err
	}
	e.clip = c
	e.queueLocked(true)

	e.logger.Debug("clip loaded",
		slog.String("path", c.path),
		slog.Int("sample_rate", int(c.format.SampleRate)),
		slog.Duration("duration", c.Duration()))
	return nil
}

// queueLocked hands a fresh pipeline for the current clip to the speaker.
func (e *Engine) queueLocked(paused bool) {
	e.ended.Store(false)
	e.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(4, e.clip.format.SampleRate, SampleRate, e.clip.streamer),
		Paused:   paused,
	}
	speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		e.ended.Store(true)
	})))
}

// Play starts or resumes the clip. A clip that ran out is queued again from its current position.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}

	if e.ended.Load() {
		e.queueLocked(false)
		return nil
	}

	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause pauses the clip.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}

	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// Position returns the playback position.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return 0
	}

	speaker.Lock()
	defer speaker.Unlock()
	return e.clip.Position()
}

// SetPosition moves the playback position.
func (e *Engine) SetPosition(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()
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

// IsPlaying reports whether the clip is producing sound.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil || e.ended.Load() {
		return false
	}

	speaker.Lock()
	defer speaker.Unlock()
	return !e.ctrl.Paused
}

// Loaded reports whether a clip is loaded.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clip != nil
}

// Close stops output and releases the clip.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unloadLocked()
	return nil
}

func (e *Engine) unloadLocked() {
	if e.clip == nil {
		return
	}
	speaker.Clear()
	e.clip.Close()
	e.clip = nil
	e.ctrl = nil
	e.ended.Store(false)
}

var _ ports.AudioService = (*Engine)(nil)
