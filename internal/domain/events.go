// Package domain defines events for the event-driven architecture.
// Events let the window, logging and tests observe the controller without callbacks.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playlist events
	EventPlaylistBuilt EventType = "playlist.built"
	EventTrackSelected EventType = "track.selected"

	// Playback events
	EventTrackLoaded    EventType = "track.loaded"
	EventTrackStarted   EventType = "track.started"
	EventTrackPaused    EventType = "track.paused"
	EventTrackCompleted EventType = "track.completed"
	EventTrackError     EventType = "track.error"
	EventSeekPerformed  EventType = "track.seek"

	// Playback mode events
	EventLoopToggled EventType = "loop.toggled"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// PlaylistBuiltEvent is published once the controller has flattened its collections.
type PlaylistBuiltEvent struct {
	baseEvent
	Playlist    Playlist
	Collections int
}

// Type returns the event type.
func (e PlaylistBuiltEvent) Type() EventType {
	return EventPlaylistBuilt
}

// NewPlaylistBuiltEvent creates a new PlaylistBuiltEvent.
func NewPlaylistBuiltEvent(playlist Playlist, collections int) PlaylistBuiltEvent {
	return PlaylistBuiltEvent{
		baseEvent:   newBaseEvent(),
		Playlist:    playlist,
		Collections: collections,
	}
}

// TrackSelectedEvent is published when a track row is activated.
type TrackSelectedEvent struct {
	baseEvent
	Index int
}

// Type returns the event type.
func (e TrackSelectedEvent) Type() EventType {
	return EventTrackSelected
}

// NewTrackSelectedEvent creates a new TrackSelectedEvent.
func NewTrackSelectedEvent(index int) TrackSelectedEvent {
	return TrackSelectedEvent{
		baseEvent: newBaseEvent(),
		Index:     index,
	}
}

// TrackLoadedEvent is published when a track is bound to the audio service.
type TrackLoadedEvent struct {
	baseEvent
	Track    Track
	Index    int
	Duration time.Duration
}

// Type returns the event type.
func (e TrackLoadedEvent) Type() EventType {
	return EventTrackLoaded
}

// NewTrackLoadedEvent creates a new TrackLoadedEvent.
func NewTrackLoadedEvent(track Track, index int, duration time.Duration) TrackLoadedEvent {
	return TrackLoadedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Index:     index,
		Duration:  duration,
	}
}

// TrackStartedEvent is published when playback starts or resumes.
type TrackStartedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(track Track) TrackStartedEvent {
	return TrackStartedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackPausedEvent is published when playback is paused.
type TrackPausedEvent struct {
	baseEvent
	Track    Track
	Position time.Duration
}

// Type returns the event type.
func (e TrackPausedEvent) Type() EventType {
	return EventTrackPaused
}

// NewTrackPausedEvent creates a new TrackPausedEvent.
func NewTrackPausedEvent(track Track, position time.Duration) TrackPausedEvent {
	return TrackPausedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Position:  position,
	}
}

// TrackCompletedEvent is published when a track reaches its end.
type TrackCompletedEvent struct {
	baseEvent
	Track   Track
	Index   int
	Looping bool
}

// Type returns the event type.
func (e TrackCompletedEvent) Type() EventType {
	return EventTrackCompleted
}

// NewTrackCompletedEvent creates a new TrackCompletedEvent.
func NewTrackCompletedEvent(track Track, index int, looping bool) TrackCompletedEvent {
	return TrackCompletedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Index:     index,
		Looping:   looping,
	}
}

// TrackErrorEvent is published when the audio service rejects an operation.
type TrackErrorEvent struct {
	baseEvent
	Track Track
	Error error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(track Track, err error) TrackErrorEvent {
	return TrackErrorEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Error:     err,
	}
}

// SeekPerformedEvent is published after the playback position was written.
type SeekPerformedEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e SeekPerformedEvent) Type() EventType {
	return EventSeekPerformed
}

// NewSeekPerformedEvent creates a new SeekPerformedEvent.
func NewSeekPerformedEvent(position, duration time.Duration) SeekPerformedEvent {
	return SeekPerformedEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
		Duration:  duration,
	}
}

// LoopToggledEvent is published when single-track loop is toggled.
type LoopToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e LoopToggledEvent) Type() EventType {
	return EventLoopToggled
}

// NewLoopToggledEvent creates a new LoopToggledEvent.
func NewLoopToggledEvent(enabled bool) LoopToggledEvent {
	return LoopToggledEvent{
		baseEvent: newBaseEvent(),
		Enabled:   enabled,
	}
}
