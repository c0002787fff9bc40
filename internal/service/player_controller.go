// Package service provides the player logic of GoSpin.
package service

import (
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// Player defaults.
const (
	DefaultSpinSpeed    = 40.0 // degrees per second
	DefaultEndTolerance = 50 * time.Millisecond
	DefaultSeekStep     = 10 * time.Second
)

// Transport animation settings.
const (
	buttonTweenDuration = 120 * time.Millisecond
	buttonPulseScale    = 1.15
	loopTweenDuration   = 90 * time.Millisecond
	loopWobbleDegrees   = 20.0
)

// PlayerConfig bundles every service and view element the controller drives.
// Collections, Bus, Logger, the animation targets and the tuning fields are optional.
type PlayerConfig struct {
	Collections []*domain.SongCollection
	Audio       ports.AudioService

	SongName    ports.TextBinding
	Author      ports.TextBinding
	CurrentTime ports.TextBinding
	TotalTime   ports.TextBinding

	Thumbnail         ports.ImageBinding
	ThumbnailRotation ports.RotationBinding
	Progress          ports.SliderBinding

	PlayPauseIcon   ports.IconBinding
	LoopIcon        ports.IconBinding
	PlayPauseTarget ports.AnimationTarget
	LoopTarget      ports.AnimationTarget

	Rows     ports.TrackRowFactory
	Animator ports.Animator
	Bus      ports.EventBus
	Logger   *slog.Logger

	// SpinSpeed is the thumbnail rotation in degrees per second (0 means DefaultSpinSpeed).
	SpinSpeed float64

	// EndTolerance is how close to the clip end a track counts as finished (0 means DefaultEndTolerance).
	EndTolerance time.Duration

	// SeekStep is the jump of SeekForward and SeekBackward (0 means DefaultSeekStep).
	SeekStep time.Duration
}

// Validate reports the first missing or invalid field.
func (c PlayerConfig) Validate() error {
	required := []struct {
		field string
		set   bool
	}{
		{"Audio", c.Audio != nil},
		{"SongName", c.SongName != nil},
		{"Author", c.Author != nil},
		{"CurrentTime", c.CurrentTime != nil},
		{"TotalTime", c.TotalTime != nil},
		{"Thumbnail", c.Thumbnail != nil},
		{"ThumbnailRotation", c.ThumbnailRotation != nil},
		{"Progress", c.Progress != nil},
		{"PlayPauseIcon", c.PlayPauseIcon != nil},
		{"LoopIcon", c.LoopIcon != nil},
		{"Rows", c.Rows != nil},
		{"Animator", c.Animator != nil},
	}
	for _, r := range required {
		if !r.set {
			return domain.NewValidationError(r.field, nil, "must be set")
		}
	}

	if c.SpinSpeed < 0 {
		return domain.NewValidationError("SpinSpeed", c.SpinSpeed, "must not be negative")
	}
	if c.EndTolerance < 0 {
		return domain.NewValidationError("EndTolerance", c.EndTolerance, "must not be negative")
	}
	if c.SeekStep < 0 {
		return domain.NewValidationError("SeekStep", c.SeekStep, "must not be negative")
	}
	return nil
}

// PlayerController is the transport core. It owns the playlist, the current index and the
// play, drag and loop flags, drives the audio service and keeps every bound view in sync.
//
// Thread-safety: not safe for concurrent use. Start, Tick and every input handler must be
// called from the UI thread. Handlers may re-enter the controller (row activation does).
type PlayerController struct {
	cfg    PlayerConfig
	logger *slog.Logger
	audio  ports.AudioService
	bus    ports.EventBus

	playlist domain.Playlist
	buttons  []*TrackButtonView

	currentIndex int
	isPlaying    bool
	dragging     bool
	loop         bool
	started      bool
}

// NewPlayerController validates cfg and creates a controller in the Empty state.
// Nothing is rendered until Start.
func NewPlayerController(cfg PlayerConfig) (*PlayerController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SpinSpeed == 0 {
		cfg.SpinSpeed = DefaultSpinSpeed
	}
	if cfg.EndTolerance == 0 {
		cfg.EndTolerance = DefaultEndTolerance
	}
	if cfg.SeekStep == 0 {
		cfg.SeekStep = DefaultSeekStep
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &PlayerController{
		cfg:          cfg,
		logger:       log.With(slog.String("service", "player")),
		audio:        cfg.Audio,
		bus:          cfg.Bus,
		currentIndex: -1,
	}, nil
}

// Start builds the playlist and its rows, then loads and plays the first track.
// An empty playlist is logged and leaves the controller Empty. Only the first call has an effect.
func (c *PlayerController) Start() {
	if c.started {
		c.logger.Warn("player already started")
		return
	}
	c.started = true

	c.playlist = BuildPlaylist(c.cfg.Collections)
	c.publish(domain.NewPlaylistBuiltEvent(slices.Clone(c.playlist), len(c.cfg.Collections)))
	c.buildButtons()

	c.renderLoopIcon()

	if c.playlist.Len() == 0 {
		c.logger.Warn("playlist empty", slog.Int("collections", len(c.cfg.Collections)))
		c.renderTransportIcon()
		return
	}

	c.logger.Info("playlist built",
		slog.Int("tracks", c.playlist.Len()),
		slog.Int("collections", len(c.cfg.Collections)))

	c.LoadTrack(0)
	c.RenderTrackButtons()
}

func (c *PlayerController) buildButtons() {
	rows := c.cfg.Rows.NewRows(c.playlist.Len())
	if len(rows) != c.playlist.Len() {
		c.logger.Error("row factory returned wrong number of rows",
			slog.Int("want", c.playlist.Len()),
			slog.Int("got", len(rows)))
	}

	c.buttons = make([]*TrackButtonView, 0, len(rows))
	for i, track := range c.playlist {
		if i >= len(rows) {
			break
		}
		view := NewTrackButtonView(track, i, rows[i], c.cfg.Animator, c.SelectTrack, c.RenderTrackButtons)
		view.Deselect()
		c.buttons = append(c.buttons, view)
	}
}

// Tick advances the controller by one frame. Within a tick the position is read first, the
// labels and bar are written from it next, and end-of-track detection runs last.
func (c *PlayerController) Tick(dt time.Duration) {
	if !c.audio.Loaded() {
		return
	}

	position := c.audio.Position()
	duration := c.audio.Duration()

	if !c.dragging {
		c.renderProgress(position, duration)
		c.RenderTrackButtons()
	}

	if c.audio.IsPlaying() {
		c.cfg.ThumbnailRotation.Rotate(c.cfg.SpinSpeed * dt.Seconds())
	}

	if c.isPlaying && !c.dragging && duration > 0 && position >= duration-c.cfg.EndTolerance {
		c.finishTrack()
	}
}

func (c *PlayerController) finishTrack() {
	track, _ := c.playlist.At(c.currentIndex)
	c.publish(domain.NewTrackCompletedEvent(track, c.currentIndex, c.loop))

	if !c.loop {
		c.NextSong()
		return
	}

	if err := c.audio.SetPosition(0); err != nil {
		c.reportError("rewind", err)
		return
	}
	if err := c.audio.Play(); err != nil {
		c.reportError("play", err)
	}
}

// SelectTrack loads the track at index in response to a row activation.
func (c *PlayerController) SelectTrack(index int) {
	c.publish(domain.NewTrackSelectedEvent(index))
	c.LoadTrack(index)
}

// LoadTrack binds the track at index to the views and the audio service, then plays it.
// An index outside the playlist is ignored.
func (c *PlayerController) LoadTrack(index int) {
	track, ok := c.playlist.At(index)
	if !ok {
		c.logger.Warn("ignoring load of invalid index",
			slog.Int("index", index),
			slog.Int("tracks", c.playlist.Len()))
		return
	}

	c.currentIndex = index

	c.cfg.SongName.SetText(track.Name)
	c.cfg.Author.SetText(track.Author)
	c.cfg.Thumbnail.SetImage(track.Thumbnail)

	if err := c.audio.Load(track.Audio); err != nil {
		c.reportError("load", err)
	}

	duration := c.audio.Duration()
	c.cfg.TotalTime.SetText(FormatDuration(duration))
	if !c.dragging {
		c.renderProgress(0, duration)
	}
	c.cfg.ThumbnailRotation.ResetRotation()

	if !c.audio.Loaded() {
		c.isPlaying = false
		c.renderTransportIcon()
		c.RenderTrackButtons()
		return
	}

	c.logger.Debug("track loaded",
		slog.Int("index", index),
		slog.String("name", track.Name),
		slog.Duration("duration", duration))
	c.publish(domain.NewTrackLoadedEvent(track, index, duration))

	c.Play()
	c.RenderTrackButtons()
}

// TogglePlayPause pauses a playing clip and plays a paused one.
func (c *PlayerController) TogglePlayPause() {
	if c.audio.IsPlaying() {
		c.Pause()
	} else {
		c.Play()
	}
}

// Play starts or resumes the loaded clip. Without a clip it does nothing.
func (c *PlayerController) Play() {
	if !c.audio.Loaded() {
		return
	}

	if err := c.audio.Play(); err != nil {
		c.reportError("play", err)
		return
	}
	c.isPlaying = true

	c.renderTransport()
	c.RenderTrackButtons()

	track, _ := c.playlist.At(c.currentIndex)
	c.publish(domain.NewTrackStartedEvent(track))
}

// Pause pauses the loaded clip. Without a clip it does nothing.
func (c *PlayerController) Pause() {
	if !c.audio.Loaded() {
		return
	}

	if err := c.audio.Pause(); err != nil {
		c.reportError("pause", err)
		return
	}
	c.isPlaying = false

	c.renderTransport()
	c.RenderTrackButtons()

	track, _ := c.playlist.At(c.currentIndex)
	c.publish(domain.NewTrackPausedEvent(track, c.audio.Position()))
}

// NextSong loads the following track, wrapping to the first after the last.
func (c *PlayerController) NextSong() {
	n := c.playlist.Len()
	if n == 0 {
		return
	}
	c.LoadTrack((c.currentIndex + 1) % n)
}

// PreviousSong loads the preceding track, wrapping to the last before the first.
func (c *PlayerController) PreviousSong() {
	n := c.playlist.Len()
	if n == 0 {
		return
	}
	c.LoadTrack((c.currentIndex - 1 + n) % n)
}

// Seek moves the playback position by delta, clamped to the clip bounds.
func (c *PlayerController) Seek(delta time.Duration) {
	if !c.audio.Loaded() {
		return
	}

	duration := c.audio.Duration()
	c.setPosition(lo.Clamp(c.audio.Position()+delta, 0, duration), duration)
}

// SeekForward jumps ahead by the configured step.
func (c *PlayerController) SeekForward() {
	c.Seek(c.cfg.SeekStep)
}

// SeekBackward jumps back by the configured step.
func (c *PlayerController) SeekBackward() {
	c.Seek(-c.cfg.SeekStep)
}

// StartDrag begins a scrub. Until EndDrag the bar is no longer driven from the playback position.
func (c *PlayerController) StartDrag() {
	c.dragging = true
}

// OnSeekBarChanged follows the bar while a scrub is active. Outside a scrub it does nothing,
// so the controller's own bar updates never feed back into the playback position.
func (c *PlayerController) OnSeekBarChanged(value float64) {
	if !c.audio.Loaded() || !c.dragging {
		return
	}

	duration := c.audio.Duration()
	c.setPosition(scaleDuration(value, duration), duration)
}

// EndDrag finishes a scrub with one final position write taken from the bar.
func (c *PlayerController) EndDrag() {
	c.dragging = false
	if !c.audio.Loaded() {
		return
	}

	duration := c.audio.Duration()
	c.setPosition(scaleDuration(c.cfg.Progress.Value(), duration), duration)
}

// SetLoop turns single-track loop on or off.
func (c *PlayerController) SetLoop(enabled bool) {
	c.loop = enabled
	c.renderLoopIcon()
	c.animateLoop()

	c.logger.Debug("loop toggled", slog.Bool("enabled", enabled))
	c.publish(domain.NewLoopToggledEvent(enabled))
}

// ToggleLoop inverts the single-track loop flag.
func (c *PlayerController) ToggleLoop() {
	c.SetLoop(!c.loop)
}

// RenderTrackButtons highlights the current row with its playing indicator and resets the others.
func (c *PlayerController) RenderTrackButtons() {
	current := domain.IndicatorPaused
	if c.audio.IsPlaying() {
		current = domain.IndicatorPlaying
	}

	for i, button := range c.buttons {
		if i == c.currentIndex {
			button.Select()
			button.SetPlayingIndicator(current)
			continue
		}
		button.Deselect()
		button.SetPlayingIndicator(domain.IndicatorIdle)
	}
}

// State returns a snapshot of the controller state.
func (c *PlayerController) State() domain.PlayerState {
	return domain.PlayerState{
		CurrentIndex:    c.currentIndex,
		IsPlaying:       c.isPlaying,
		IsSeekDragging:  c.dragging,
		LoopSingleTrack: c.loop,
		Position:        c.audio.Position(),
		Duration:        c.audio.Duration(),
	}
}

// Playlist returns a copy of the playlist.
func (c *PlayerController) Playlist() domain.Playlist {
	return slices.Clone(c.playlist)
}

// Buttons returns the row views in playlist order.
func (c *PlayerController) Buttons() []*TrackButtonView {
	return slices.Clone(c.buttons)
}

// CurrentTrack returns the loaded track, if any.
func (c *PlayerController) CurrentTrack() (domain.Track, bool) {
	return c.playlist.At(c.currentIndex)
}

func (c *PlayerController) setPosition(position, duration time.Duration) {
	if err := c.audio.SetPosition(position); err != nil {
		c.reportError("seek", err)
		return
	}
	c.publish(domain.NewSeekPerformedEvent(position, duration))
}

func (c *PlayerController) renderProgress(position, duration time.Duration) {
	c.cfg.CurrentTime.SetText(FormatDuration(position))

	value := 0.0
	if duration > 0 {
		value = position.Seconds() / duration.Seconds()
	}
	c.cfg.Progress.SetValue(value)
}

func (c *PlayerController) renderTransport() {
	c.renderTransportIcon()

	if c.cfg.PlayPauseTarget == "" {
		return
	}
	target := c.cfg.PlayPauseTarget
	c.cfg.Animator.Cancel(target)
	c.cfg.Animator.Animate(target, ports.PropertyScale, buttonPulseScale, buttonTweenDuration, ports.EaseOutQuad, func() {
		c.cfg.Animator.Animate(target, ports.PropertyScale, 1, buttonTweenDuration, ports.EaseOutQuad, nil)
	})
}

func (c *PlayerController) renderTransportIcon() {
	if c.audio.IsPlaying() {
		c.cfg.PlayPauseIcon.SetIcon(domain.IconPause)
	} else {
		c.cfg.PlayPauseIcon.SetIcon(domain.IconPlay)
	}
}

func (c *PlayerController) renderLoopIcon() {
	if c.loop {
		c.cfg.LoopIcon.SetIcon(domain.IconLoopOn)
	} else {
		c.cfg.LoopIcon.SetIcon(domain.IconLoopOff)
	}
}

func (c *PlayerController) animateLoop() {
	if c.cfg.LoopTarget == "" {
		return
	}
	target := c.cfg.LoopTarget
	c.cfg.Animator.Cancel(target)
	c.cfg.Animator.Animate(target, ports.PropertyRotation, loopWobbleDegrees, loopTweenDuration, ports.EaseOutQuad, func() {
		c.cfg.Animator.Animate(target, ports.PropertyRotation, 0, loopTweenDuration, ports.EaseOutQuad, nil)
	})
}

func (c *PlayerController) reportError(op string, err error) {
	track, _ := c.playlist.At(c.currentIndex)
	c.logger.Error("audio operation failed",
		slog.String("op", op),
		slog.String("track", track.Name),
		slog.Any("error", err))
	c.publish(domain.NewTrackErrorEvent(track, err))
}

func (c *PlayerController) publish(event domain.Event) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// scaleDuration maps a normalized bar value onto [0, duration].
func scaleDuration(value float64, duration time.Duration) time.Duration {
	return time.Duration(lo.Clamp(value, 0, 1) * float64(duration))
}

var (
	_ ports.Starter = (*PlayerController)(nil)
	_ ports.Ticker  = (*PlayerController)(nil)
)
