// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// AudioService is the single-clip audio source the player drives.
// Exactly one clip is loaded at a time; loading a new clip replaces the previous one.
//
// Implementations are called from the UI thread only, but may decode on their own goroutines.
type AudioService interface {
	// Load replaces the current clip with the one behind handle.
	// Position is reset to zero and the clip is not started.
	// The previous clip is released first, so nothing is loaded after a failure.
	Load(handle domain.ResourceHandle) error

	// Play starts or resumes the loaded clip.
	// Returns domain.ErrNoTrackLoaded when nothing is loaded.
	Play() error

	// Pause pauses the loaded clip, keeping its position.
	Pause() error

	// Position returns the current playback position.
	Position() time.Duration

	// SetPosition moves the playback position. The value must be within [0, Duration].
	SetPosition(position time.Duration) error

	// Duration returns the length of the loaded clip (0 when nothing is loaded).
	Duration() time.Duration

	// IsPlaying reports whether audio is being produced right now.
	// It turns false when the clip runs out, even if nobody called Pause.
	IsPlaying() bool

	// Loaded reports whether a clip is loaded.
	Loaded() bool

	// Close releases the clip and the output device.
	Close() error
}

// TagReader reads metadata tags from audio files.
type TagReader interface {
	// ReadTags returns the tags of the file at path.
	ReadTags(path string) (*domain.TrackTags, error)
}
