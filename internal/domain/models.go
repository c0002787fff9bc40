// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the GoSpin player.
package domain

import (
	"strings"
	"time"
)

// ResourceHandle is an opaque reference to an asset the host services know how to open.
// Plain values are file paths; values prefixed with TagArtworkPrefix point at the
// embedded picture of an audio file.
type ResourceHandle string

// TagArtworkPrefix marks a handle that resolves to the artwork embedded in an audio file.
const TagArtworkPrefix = "tag:"

// NoResource is the empty handle.
const NoResource ResourceHandle = ""

// TagArtwork returns the handle for the picture embedded in the audio file at path.
func TagArtwork(path string) ResourceHandle {
	return ResourceHandle(TagArtworkPrefix + path)
}

// IsTagArtwork reports whether the handle refers to embedded artwork.
func (h ResourceHandle) IsTagArtwork() bool {
	return strings.HasPrefix(string(h), TagArtworkPrefix)
}

// Path returns the filesystem path behind the handle.
func (h ResourceHandle) Path() string {
	return strings.TrimPrefix(string(h), TagArtworkPrefix)
}

// Track describes one playable item. Tracks are immutable after construction.
type Track struct {
	// ID is a unique identifier for the track (UUID)
	ID string

	// Name is the displayed track name
	Name string

	// Author is the performing artist
	Author string

	// Audio is the handle of the audio clip
	Audio ResourceHandle

	// Thumbnail is the handle of the cover image
	Thumbnail ResourceHandle
}

// SongCollection is an album-like, named and ordered list of tracks.
type SongCollection struct {
	Name   string
	Tracks []Track
}

// Playlist is the flattened, ordered sequence of tracks built once at startup.
type Playlist []Track

// Len returns the number of entries.
func (p Playlist) Len() int {
	return len(p)
}

// At returns the track at index i and whether the index is valid.
func (p Playlist) At(i int) (Track, bool) {
	if i < 0 || i >= len(p) {
		return Track{}, false
	}
	return p[i], true
}

// PlayerState is a snapshot of the controller state.
type PlayerState struct {
	// CurrentIndex is the playlist index of the loaded track (-1 if the playlist is empty)
	CurrentIndex int

	// IsPlaying is the transport intent (true after Play, false after Pause)
	IsPlaying bool

	// IsSeekDragging is true while the user scrubs the progress bar
	IsSeekDragging bool

	// LoopSingleTrack restarts the current track instead of advancing
	LoopSingleTrack bool

	// Position is the current playback position
	Position time.Duration

	// Duration is the length of the loaded clip
	Duration time.Duration
}

// Status returns the playback status derived from the snapshot.
func (s PlayerState) Status() PlaybackStatus {
	switch {
	case s.CurrentIndex < 0:
		return StatusEmpty
	case s.IsPlaying:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// PlaybackStatus represents the controller state machine.
type PlaybackStatus int

const (
	// StatusEmpty means there is no playlist to play from
	StatusEmpty PlaybackStatus = iota

	// StatusPaused means a track is loaded but not playing
	StatusPaused

	// StatusPlaying means a track is loaded and playing
	StatusPlaying
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPaused:
		return "paused"
	case StatusPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Indicator is the playing state shown on a track row.
type Indicator int

const (
	IndicatorIdle Indicator = iota
	IndicatorPaused
	IndicatorPlaying
)

// String returns a human-readable representation of the indicator.
func (i Indicator) String() string {
	switch i {
	case IndicatorIdle:
		return "idle"
	case IndicatorPaused:
		return "paused"
	case IndicatorPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Icon identifies a sprite shown by an icon binding.
type Icon int

const (
	IconPlay Icon = iota
	IconPause
	IconLoopOn
	IconLoopOff
	IconRowPlaying
	IconRowPaused
	IconRowIdle
	IconPrevious
	IconNext
)

// IndicatorIcon maps a row indicator to its icon.
func IndicatorIcon(i Indicator) Icon {
	switch i {
	case IndicatorPlaying:
		return IconRowPlaying
	case IndicatorPaused:
		return IconRowPaused
	default:
		return IconRowIdle
	}
}

// TrackTags holds the tag fields read from an audio file.
type TrackTags struct {
	Title      string
	Artist     string
	Album      string
	HasPicture bool
}
