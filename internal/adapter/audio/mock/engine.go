// Package mock provides an in-memory implementation of the AudioService interface.
// It is used for tests and for running the player without an audio device.
package mock

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// DefaultClipDuration is the length given to clips without a configured duration.
const DefaultClipDuration = 3 * time.Minute

// Engine simulates a single-clip audio source. Time only moves when Advance or Tick is
// called, so tests control it directly and a host loop can drive it in real time.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu         sync.RWMutex
	durations  map[domain.ResourceHandle]time.Duration
	durationOf DurationSource

	loaded   domain.ResourceHandle
	hasClip  bool
	duration time.Duration
	position time.Duration
	playing  bool
	closed   bool

	// Call counters (for testing)
	loads     int
	plays     int
	pauses    int
	positions []time.Duration

	// Behavior configuration (for testing error scenarios)
	failLoad bool
	failPlay bool
}

// NewEngine creates a new mock audio engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:    logger,
		durations: make(map[domain.ResourceHandle]time.Duration),
	}
}

// DurationSource reports the real length of the clip behind handle.
type DurationSource func(handle domain.ResourceHandle) (time.Duration, error)

// SetDurationSource makes clips without a configured duration report what source
// returns. Clips the source cannot measure fall back to DefaultClipDuration.
func (m *Engine) SetDurationSource(source DurationSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationOf = source
}

// SetClipDuration configures the length reported for a clip.
func (m *Engine) SetClipDuration(handle domain.ResourceHandle, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[handle] = d
}

// SetFailLoad configures the mock to fail loading clips (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Load replaces the current clip. A failed load leaves nothing loaded.
func (m *Engine) Load(handle domain.ResourceHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.NewAudioEngineError("load", handle.Path(), "engine closed", nil)
	}

	m.unload()
	if handle == domain.NoResource {
		return domain.ErrInvalidResource
	}
	if m.failLoad {
		return domain.NewAudioEngineError("load", handle.Path(), "mock load failed", nil)
	}

	d, ok := m.durations[handle]
	if !ok {
		d = m.measure(handle)
	}

	m.loaded = handle
	m.hasClip = true
	m.duration = d
	m.position = 0
	m.playing = false
	m.loads++

	if m.logger != nil {
		m.logger.Debug("clip loaded", slog.String("handle", string(handle)), slog.Duration("duration", d))
	}
	return nil
}

// Play starts or resumes the clip. A clip that ran out restarts from its current position,
// which lets callers rewind with SetPosition first.
func (m *Engine) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasClip {
		return domain.ErrNoTrackLoaded
	}
	if m.failPlay {
		return domain.NewAudioEngineError("play", m.loaded.Path(), "mock play failed", nil)
	}

	m.playing = true
	m.plays++
	return nil
}

// Pause pauses the clip.
func (m *Engine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasClip {
		return domain.ErrNoTrackLoaded
	}

	m.playing = false
	m.pauses++
	return nil
}

// Position returns the playback position.
func (m *Engine) Position() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// SetPosition moves the playback position.
func (m *Engine) SetPosition(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasClip {
		return domain.ErrNoTrackLoaded
	}
	if position < 0 || position > m.duration {
		return domain.ErrInvalidPosition
	}

	m.position = position
	m.positions = append(m.positions, position)
	return nil
}

// Duration returns the clip length.
func (m *Engine) Duration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.duration
}

// IsPlaying reports whether the clip is running.
func (m *Engine) IsPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playing
}

// Loaded reports whether a clip is loaded.
func (m *Engine) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasClip
}

// Close unloads the clip. Further loads fail.
func (m *Engine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.unload()
	return nil
}

func (m *Engine) unload() {
	m.hasClip = false
	m.playing = false
	m.loaded = domain.NoResource
	m.position = 0
	m.duration = 0
}

func (m *Engine) measure(handle domain.ResourceHandle) time.Duration {
	if m.durationOf == nil {
		return DefaultClipDuration
	}

	d, err := m.durationOf(handle)
	if err != nil || d <= 0 {
		if m.logger != nil {
			m.logger.Warn("cannot measure clip, using default length",
				slog.String("handle", string(handle)),
				slog.Any("error", err))
		}
		return DefaultClipDuration
	}
	return d
}

// Tick advances the clip by the frame time, so a host loop can play it silently.
func (m *Engine) Tick(dt time.Duration) {
	m.Advance(dt)
}

// Advance simulates playback time passing. Position stops at the clip end,
// where the engine stops playing on its own.
func (m *Engine) Advance(dt time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasClip || !m.playing {
		return
	}

	m.position += dt
	if m.position >= m.duration {
		m.position = m.duration
		m.playing = false
	}
}

// LoadedHandle returns the handle of the current clip (for testing).
func (m *Engine) LoadedHandle() domain.ResourceHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// LoadCount returns how many times Load succeeded (for testing).
func (m *Engine) LoadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}

// PlayCount returns how many times Play succeeded (for testing).
func (m *Engine) PlayCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plays
}

// PositionWrites returns every position passed to SetPosition (for testing).
func (m *Engine) PositionWrites() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	writes := make([]time.Duration, len(m.positions))
	copy(writes, m.positions)
	return writes
}

// ResetPositionWrites clears the SetPosition history (for testing).
func (m *Engine) ResetPositionWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = nil
}

var (
	_ ports.AudioService = (*Engine)(nil)
	_ ports.Ticker       = (*Engine)(nil)
)
