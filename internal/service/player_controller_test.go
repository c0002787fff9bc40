package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/gospin/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/gospin/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/logger"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

const clipLength = 30 * time.Second

type playerFixture struct {
	ctrl  *PlayerController
	audio *mock.Engine
	bus   *eventbus.SyncEventBus

	songName *fakeText
	author   *fakeText
	current  *fakeText
	total    *fakeText
	thumb    *fakeImage
	rotation *fakeRotation
	progress *fakeSlider
	playIcon *fakeIcon
	loopIcon *fakeIcon
	rows     *fakeRowFactory
	animator *fakeAnimator

	events []domain.Event
}

func newPlayerConfig(f *playerFixture, collections []*domain.SongCollection) PlayerConfig {
	return PlayerConfig{
		Collections:       collections,
		Audio:             f.audio,
		SongName:          f.songName,
		Author:            f.author,
		CurrentTime:       f.current,
		TotalTime:         f.total,
		Thumbnail:         f.thumb,
		ThumbnailRotation: f.rotation,
		Progress:          f.progress,
		PlayPauseIcon:     f.playIcon,
		LoopIcon:          f.loopIcon,
		PlayPauseTarget:   "play-pause",
		LoopTarget:        "loop",
		Rows:              f.rows,
		Animator:          f.animator,
		Bus:               f.bus,
		Logger:            logger.NewTestLogger(),
	}
}

// newPlayerFixture creates a controller over collections without starting it.
// Every track clip is clipLength long.
func newPlayerFixture(t *testing.T, collections ...*domain.SongCollection) *playerFixture {
	t.Helper()

	f := &playerFixture{
		audio:    mock.NewEngine(logger.NewTestLogger()),
		bus:      eventbus.NewSyncEventBus(logger.NewTestLogger()),
		songName: &fakeText{},
		author:   &fakeText{},
		current:  &fakeText{},
		total:    &fakeText{},
		thumb:    &fakeImage{},
		rotation: &fakeRotation{},
		progress: &fakeSlider{},
		playIcon: &fakeIcon{},
		loopIcon: &fakeIcon{},
		rows:     &fakeRowFactory{},
		animator: newFakeAnimator(),
	}
	t.Cleanup(func() { _ = f.bus.Close() })

	for _, c := range collections {
		if c == nil {
			continue
		}
		for _, tr := range c.Tracks {
			f.audio.SetClipDuration(tr.Audio, clipLength)
		}
	}

	f.bus.SubscribeAll(func(e domain.Event) { f.events = append(f.events, e) })

	ctrl, err := NewPlayerController(newPlayerConfig(f, collections))
	require.NoError(t, err)
	f.ctrl = ctrl

	return f
}

// startedPlayer returns a started controller over one collection of n tracks.
func startedPlayer(t *testing.T, n int) *playerFixture {
	t.Helper()

	tracks := make([]domain.Track, n)
	for i := range tracks {
		tracks[i] = track(fmt.Sprintf("t%d", i))
	}
	f := newPlayerFixture(t, &domain.SongCollection{Name: "Album", Tracks: tracks})
	f.ctrl.Start()
	return f
}

func (f *playerFixture) eventTypes() []domain.EventType {
	types := make([]domain.EventType, len(f.events))
	for i, e := range f.events {
		types[i] = e.Type()
	}
	return types
}

func (f *playerFixture) selectedCount() int {
	count := 0
	for _, b := range f.ctrl.Buttons() {
		if b.Selected() {
			count++
		}
	}
	return count
}

func TestNewPlayerController_Validation(t *testing.T) {
	f := newPlayerFixture(t)

	cfg := newPlayerConfig(f, nil)
	cfg.Audio = nil
	_, err := NewPlayerController(cfg)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Audio", validation.Field)

	cfg = newPlayerConfig(f, nil)
	cfg.Rows = nil
	_, err = NewPlayerController(cfg)
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Rows", validation.Field)

	cfg = newPlayerConfig(f, nil)
	cfg.SpinSpeed = -1
	_, err = NewPlayerController(cfg)
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "SpinSpeed", validation.Field)

	cfg = newPlayerConfig(f, nil)
	cfg.EndTolerance = -time.Second
	_, err = NewPlayerController(cfg)
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "EndTolerance", validation.Field)
}

func TestNewPlayerController_Defaults(t *testing.T) {
	f := newPlayerFixture(t)

	assert.InDelta(t, DefaultSpinSpeed, f.ctrl.cfg.SpinSpeed, 1e-9)
	assert.Equal(t, DefaultEndTolerance, f.ctrl.cfg.EndTolerance)
	assert.Equal(t, DefaultSeekStep, f.ctrl.cfg.SeekStep)
	assert.Equal(t, domain.StatusEmpty, f.ctrl.State().Status())
}

func TestPlayerController_StartEmpty(t *testing.T) {
	f := newPlayerFixture(t, nil, &domain.SongCollection{Name: "empty"})

	f.ctrl.Start()

	state := f.ctrl.State()
	assert.Equal(t, -1, state.CurrentIndex)
	assert.Equal(t, domain.StatusEmpty, state.Status())
	assert.Empty(t, f.ctrl.Buttons())
	assert.Zero(t, f.selectedCount())
	assert.Equal(t, domain.IconLoopOff, f.loopIcon.icon)
	assert.Equal(t, domain.IconPlay, f.playIcon.icon)
	assert.Equal(t, []domain.EventType{domain.EventPlaylistBuilt}, f.eventTypes())

	// Everything is a no-op now.
	f.ctrl.NextSong()
	f.ctrl.PreviousSong()
	f.ctrl.Play()
	f.ctrl.TogglePlayPause()
	f.ctrl.Seek(5 * time.Second)
	f.ctrl.StartDrag()
	f.ctrl.OnSeekBarChanged(0.5)
	f.ctrl.EndDrag()
	f.ctrl.Tick(time.Second)

	assert.Equal(t, 0, f.audio.LoadCount())
	assert.Equal(t, 0, f.audio.PlayCount())
	assert.Empty(t, f.audio.PositionWrites())
	assert.Zero(t, f.progress.writes)
	assert.Equal(t, -1, f.ctrl.State().CurrentIndex)
}

func TestPlayerController_StartLoadsAndPlaysFirstTrack(t *testing.T) {
	f := startedPlayer(t, 3)

	state := f.ctrl.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, domain.StatusPlaying, state.Status())
	assert.True(t, f.audio.IsPlaying())
	assert.Equal(t, domain.ResourceHandle("/music/t0.mp3"), f.audio.LoadedHandle())

	assert.Equal(t, "Song t0", f.songName.text)
	assert.Equal(t, "Artist t0", f.author.text)
	assert.Equal(t, domain.ResourceHandle("/art/t0.png"), f.thumb.handle)
	assert.Equal(t, "00:30", f.total.text)
	assert.Equal(t, "00:00", f.current.text)
	assert.Equal(t, 1, f.rotation.resets)
	assert.Equal(t, domain.IconPause, f.playIcon.icon)
	assert.Equal(t, domain.IconLoopOff, f.loopIcon.icon)

	require.Len(t, f.ctrl.Buttons(), 3)
	assert.Equal(t, 1, f.selectedCount())
	assert.True(t, f.ctrl.Buttons()[0].Selected())
	assert.Equal(t, domain.IndicatorPlaying, f.ctrl.Buttons()[0].Indicator())
	assert.Equal(t, domain.IndicatorIdle, f.ctrl.Buttons()[1].Indicator())
	assert.Equal(t, domain.IconRowPlaying, f.rows.rows[0].icon)

	assert.Equal(t, []domain.EventType{
		domain.EventPlaylistBuilt,
		domain.EventTrackLoaded,
		domain.EventTrackStarted,
	}, f.eventTypes())

	built := f.events[0].(domain.PlaylistBuiltEvent)
	assert.Equal(t, 3, built.Playlist.Len())
	assert.Equal(t, 1, built.Collections)
}

func TestPlayerController_StartTwice(t *testing.T) {
	f := startedPlayer(t, 2)
	rows := f.rows.rows

	f.ctrl.Start()

	assert.Same(t, rows[0], f.rows.rows[0], "rows are built once")
	assert.Equal(t, 1, f.audio.LoadCount())
}

func TestPlayerController_StartFlattensCollections(t *testing.T) {
	t1, t2, t3 := track("t1"), track("t2"), track("t3")
	f := newPlayerFixture(t,
		&domain.SongCollection{Name: "A", Tracks: []domain.Track{t1, t2}},
		nil,
		&domain.SongCollection{Name: "B", Tracks: []domain.Track{t3}},
	)

	f.ctrl.Start()

	assert.Equal(t, domain.Playlist{t1, t2, t3}, f.ctrl.Playlist())
	require.Len(t, f.rows.rows, 3)
	for i, row := range f.rows.rows {
		assert.Equal(t, f.ctrl.Playlist()[i].ID, row.track.ID, "row %d bound to its playlist index", i)
	}
}

func TestPlayerController_NextSongIsCyclic(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("length %d", n), func(t *testing.T) {
			f := startedPlayer(t, n)

			for start := 0; start < n; start++ {
				f.ctrl.LoadTrack(start)
				for i := 0; i < n; i++ {
					f.ctrl.NextSong()
				}
				assert.Equal(t, start, f.ctrl.State().CurrentIndex)
			}
		})
	}
}

func TestPlayerController_PreviousIsInverseOfNext(t *testing.T) {
	f := startedPlayer(t, 4)

	for start := 0; start < 4; start++ {
		f.ctrl.LoadTrack(start)

		f.ctrl.NextSong()
		f.ctrl.PreviousSong()
		assert.Equal(t, start, f.ctrl.State().CurrentIndex)

		f.ctrl.PreviousSong()
		f.ctrl.NextSong()
		assert.Equal(t, start, f.ctrl.State().CurrentIndex)
	}
}

func TestPlayerController_NavigationWraps(t *testing.T) {
	f := startedPlayer(t, 3)

	f.ctrl.PreviousSong()
	assert.Equal(t, 2, f.ctrl.State().CurrentIndex)
	assert.Equal(t, "Song t2", f.songName.text)

	f.ctrl.NextSong()
	assert.Equal(t, 0, f.ctrl.State().CurrentIndex)
	assert.Equal(t, domain.ResourceHandle("/music/t0.mp3"), f.audio.LoadedHandle())
}

func TestPlayerController_LoadTrackInvalidIndex(t *testing.T) {
	f := startedPlayer(t, 2)
	loads := f.audio.LoadCount()

	f.ctrl.LoadTrack(-1)
	f.ctrl.LoadTrack(2)

	assert.Equal(t, 0, f.ctrl.State().CurrentIndex)
	assert.Equal(t, loads, f.audio.LoadCount())
}

func TestPlayerController_EndOfLastTrackWrapsToFirst(t *testing.T) {
	f := startedPlayer(t, 3)
	f.ctrl.LoadTrack(2)

	f.audio.Advance(clipLength)
	require.False(t, f.audio.IsPlaying(), "clip ran out")

	f.ctrl.Tick(16 * time.Millisecond)

	state := f.ctrl.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.True(t, f.audio.IsPlaying())
	assert.Equal(t, domain.ResourceHandle("/music/t0.mp3"), f.audio.LoadedHandle())
	assert.Equal(t, "Song t0", f.songName.text)

	var completed []domain.TrackCompletedEvent
	for _, e := range f.events {
		if c, ok := e.(domain.TrackCompletedEvent); ok {
			completed = append(completed, c)
		}
	}
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].Index)
	assert.False(t, completed[0].Looping)
}

func TestPlayerController_EndOfTrackTolerance(t *testing.T) {
	f := startedPlayer(t, 2)

	f.audio.Advance(clipLength - 100*time.Millisecond)
	f.ctrl.Tick(16 * time.Millisecond)
	assert.Equal(t, 0, f.ctrl.State().CurrentIndex, "100ms before the end is not finished")

	f.audio.Advance(60 * time.Millisecond)
	f.ctrl.Tick(16 * time.Millisecond)
	assert.Equal(t, 1, f.ctrl.State().CurrentIndex, "40ms before the end counts as finished")
}

func TestPlayerController_LoopRestartsSameTrack(t *testing.T) {
	f := startedPlayer(t, 3)
	f.ctrl.LoadTrack(1)
	f.ctrl.SetLoop(true)

	loads := f.audio.LoadCount()
	nameWrites := f.songName.writes
	f.audio.ResetPositionWrites()

	f.audio.Advance(clipLength - 30*time.Millisecond)
	f.ctrl.Tick(16 * time.Millisecond)

	state := f.ctrl.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, domain.StatusPlaying, state.Status())
	assert.Equal(t, time.Duration(0), f.audio.Position())
	assert.True(t, f.audio.IsPlaying())
	assert.Equal(t, loads, f.audio.LoadCount(), "loop does not reload the track")
	assert.Equal(t, nameWrites, f.songName.writes, "loop leaves metadata untouched")
	assert.Equal(t, []time.Duration{0}, f.audio.PositionWrites())
}

func TestPlayerController_LoopAfterClipRanOut(t *testing.T) {
	f := startedPlayer(t, 2)
	f.ctrl.SetLoop(true)

	f.audio.Advance(clipLength)
	f.ctrl.Tick(16 * time.Millisecond)

	assert.Equal(t, 0, f.ctrl.State().CurrentIndex)
	assert.True(t, f.audio.IsPlaying())
	assert.Equal(t, time.Duration(0), f.audio.Position())
}

func TestPlayerController_PausedAtEndDoesNotAdvance(t *testing.T) {
	f := startedPlayer(t, 2)

	f.ctrl.Pause()
	f.ctrl.Seek(clipLength)
	f.ctrl.Tick(16 * time.Millisecond)

	assert.Equal(t, 0, f.ctrl.State().CurrentIndex)
	assert.Equal(t, domain.StatusPaused, f.ctrl.State().Status())
}

func TestPlayerController_TickUpdatesProgress(t *testing.T) {
	tracks := []domain.Track{track("long")}
	f := newPlayerFixture(t, &domain.SongCollection{Name: "A", Tracks: tracks})
	f.audio.SetClipDuration(tracks[0].Audio, 10*time.Minute)
	f.ctrl.Start()

	f.audio.Advance(65400 * time.Millisecond)
	f.ctrl.Tick(16 * time.Millisecond)

	assert.Equal(t, "01:05", f.current.text)
	assert.Equal(t, "10:00", f.total.text)
	assert.InDelta(t, 65.4/600, f.progress.value, 1e-9)
}

func TestPlayerController_TickSpinsThumbnailWhilePlaying(t *testing.T) {
	f := startedPlayer(t, 1)

	f.ctrl.Tick(500 * time.Millisecond)
	assert.InDelta(t, 20.0, f.rotation.angle, 1e-9)

	f.ctrl.Pause()
	f.ctrl.Tick(500 * time.Millisecond)
	assert.InDelta(t, 20.0, f.rotation.angle, 1e-9, "paused thumbnail does not spin")

	f.ctrl.NextSong()
	assert.InDelta(t, 0.0, f.rotation.angle, 1e-9, "loading resets the rotation")
}

func TestPlayerController_TickWithoutClip(t *testing.T) {
	f := startedPlayer(t, 1)
	_ = f.audio.Close()
	writes := f.progress.writes

	f.ctrl.Tick(time.Second)

	assert.Equal(t, writes, f.progress.writes)
	assert.InDelta(t, 0.0, f.rotation.angle, 1e-9)
}

func TestPlayerController_DragSuppressesSync(t *testing.T) {
	f := startedPlayer(t, 2)
	f.audio.Advance(3 * time.Second)
	f.ctrl.Tick(16 * time.Millisecond)

	f.ctrl.StartDrag()
	assert.True(t, f.ctrl.State().IsSeekDragging)

	// The user moves the bar.
	f.progress.value = 0.5
	writes := f.progress.writes
	labels := f.current.writes

	f.audio.Advance(time.Second)
	f.ctrl.Tick(16 * time.Millisecond)
	f.ctrl.Tick(16 * time.Millisecond)

	assert.Equal(t, writes, f.progress.writes, "bar is not written while dragging")
	assert.Equal(t, labels, f.current.writes)
	assert.InDelta(t, 0.5, f.progress.value, 1e-9)
}

func TestPlayerController_DragWritesPosition(t *testing.T) {
	f := startedPlayer(t, 2)

	f.ctrl.OnSeekBarChanged(0.9)
	assert.Empty(t, f.audio.PositionWrites(), "bar changes outside a drag are ignored")

	f.ctrl.StartDrag()
	f.ctrl.OnSeekBarChanged(0.25)
	assert.Equal(t, 7500*time.Millisecond, f.audio.Position())

	f.progress.value = 0.5
	f.audio.ResetPositionWrites()

	f.ctrl.EndDrag()

	assert.False(t, f.ctrl.State().IsSeekDragging)
	assert.Equal(t, []time.Duration{15 * time.Second}, f.audio.PositionWrites(), "exactly one final write")
	assert.Equal(t, 15*time.Second, f.audio.Position())

	f.ctrl.Tick(16 * time.Millisecond)
	assert.InDelta(t, 0.5, f.progress.value, 1e-9)
	assert.Equal(t, "00:15", f.current.text)
	assert.Len(t, f.audio.PositionWrites(), 1, "ticks never write the position")
}

func TestPlayerController_DragClampsBarValue(t *testing.T) {
	f := startedPlayer(t, 1)

	f.ctrl.StartDrag()
	f.ctrl.OnSeekBarChanged(1.7)
	assert.Equal(t, clipLength, f.audio.Position())

	f.ctrl.OnSeekBarChanged(-0.2)
	assert.Equal(t, time.Duration(0), f.audio.Position())
}

func TestPlayerController_DragSuppressesEndOfTrack(t *testing.T) {
	f := startedPlayer(t, 3)

	f.ctrl.StartDrag()
	f.ctrl.OnSeekBarChanged(1)
	f.ctrl.Tick(16 * time.Millisecond)
	assert.Equal(t, 0, f.ctrl.State().CurrentIndex, "no end-of-track while dragging")

	f.progress.value = 1
	f.ctrl.EndDrag()
	f.ctrl.Tick(16 * time.Millisecond)
	assert.Equal(t, 1, f.ctrl.State().CurrentIndex, "released at the end advances on the next tick")
}

func TestPlayerController_DragEndThenLoopReset(t *testing.T) {
	f := startedPlayer(t, 3)
	f.ctrl.SetLoop(true)

	f.ctrl.StartDrag()
	f.ctrl.OnSeekBarChanged(1)
	f.progress.value = 1
	f.audio.ResetPositionWrites()

	f.ctrl.EndDrag()
	f.ctrl.Tick(16 * time.Millisecond)

	assert.Equal(t, []time.Duration{clipLength, 0}, f.audio.PositionWrites(), "drag write lands before the loop reset")
	assert.Equal(t, 0, f.ctrl.State().CurrentIndex)
	assert.True(t, f.audio.IsPlaying())
}

func TestPlayerController_SeekClamps(t *testing.T) {
	f := startedPlayer(t, 1)

	f.ctrl.Seek(time.Hour)
	assert.Equal(t, clipLength, f.audio.Position())

	f.ctrl.Seek(-time.Hour)
	assert.Equal(t, time.Duration(0), f.audio.Position())

	f.ctrl.SeekForward()
	assert.Equal(t, 10*time.Second, f.audio.Position())

	f.ctrl.SeekForward()
	f.ctrl.SeekBackward()
	assert.Equal(t, 10*time.Second, f.audio.Position())

	var seeks []domain.SeekPerformedEvent
	for _, e := range f.events {
		if s, ok := e.(domain.SeekPerformedEvent); ok {
			seeks = append(seeks, s)
		}
	}
	require.Len(t, seeks, 5)
	assert.Equal(t, clipLength, seeks[0].Position)
	assert.Equal(t, clipLength, seeks[0].Duration)
}

func TestPlayerController_TogglePlayPause(t *testing.T) {
	f := startedPlayer(t, 2)

	f.ctrl.TogglePlayPause()
	assert.False(t, f.audio.IsPlaying())
	assert.Equal(t, domain.StatusPaused, f.ctrl.State().Status())
	assert.Equal(t, domain.IconPlay, f.playIcon.icon)
	assert.Equal(t, domain.IndicatorPaused, f.ctrl.Buttons()[0].Indicator())

	f.ctrl.TogglePlayPause()
	assert.True(t, f.audio.IsPlaying())
	assert.Equal(t, domain.StatusPlaying, f.ctrl.State().Status())
	assert.Equal(t, domain.IconPause, f.playIcon.icon)
	assert.Equal(t, domain.IndicatorPlaying, f.ctrl.Buttons()[0].Indicator())

	paused := 0
	for _, e := range f.events {
		if _, ok := e.(domain.TrackPausedEvent); ok {
			paused++
		}
	}
	assert.Equal(t, 1, paused)
}

func TestPlayerController_TransportPulse(t *testing.T) {
	f := startedPlayer(t, 1)
	f.animator.reset()

	f.ctrl.Pause()

	pulses := f.animator.on("play-pause")
	require.Len(t, pulses, 1)
	assert.InDelta(t, buttonPulseScale, pulses[0].to, 1e-9)
	assert.Contains(t, f.animator.cancels, ports.AnimationTarget("play-pause"))

	f.animator.finish("play-pause")
	pulses = f.animator.on("play-pause")
	require.Len(t, pulses, 2)
	assert.InDelta(t, 1.0, pulses[1].to, 1e-9)
}

func TestPlayerController_RowActivationSelectsTrack(t *testing.T) {
	f := startedPlayer(t, 4)

	f.rows.rows[2].click()

	assert.Equal(t, 2, f.ctrl.State().CurrentIndex)
	assert.Equal(t, "Song t2", f.songName.text)
	assert.Equal(t, 1, f.selectedCount())
	assert.True(t, f.ctrl.Buttons()[2].Selected())
	assert.False(t, f.ctrl.Buttons()[0].Selected())
	assert.Equal(t, domain.IndicatorIdle, f.ctrl.Buttons()[0].Indicator())
	assert.Equal(t, domain.IconRowIdle, f.rows.rows[0].icon)
	assert.Contains(t, f.eventTypes(), domain.EventTrackSelected)

	current, ok := f.ctrl.CurrentTrack()
	require.True(t, ok)
	assert.Equal(t, "t2", current.ID)
}

func TestPlayerController_ExactlyOneSelected(t *testing.T) {
	f := startedPlayer(t, 5)

	ops := []func(){
		f.ctrl.NextSong,
		f.ctrl.PreviousSong,
		f.ctrl.PreviousSong,
		f.ctrl.TogglePlayPause,
		func() { f.rows.rows[3].click() },
		func() { f.ctrl.Tick(16 * time.Millisecond) },
		func() {
			f.audio.Advance(clipLength)
			f.ctrl.Tick(16 * time.Millisecond)
		},
		f.ctrl.RenderTrackButtons,
	}
	for i, op := range ops {
		op()
		assert.Equal(t, 1, f.selectedCount(), "after op %d", i)
		assert.True(t, f.ctrl.Buttons()[f.ctrl.State().CurrentIndex].Selected(), "after op %d", i)
	}
}

func TestPlayerController_TicksDoNotRestartRowAnimations(t *testing.T) {
	f := startedPlayer(t, 3)
	f.animator.reset()

	for i := 0; i < 10; i++ {
		f.ctrl.Tick(16 * time.Millisecond)
	}

	assert.Empty(t, f.animator.animations)
}

func TestPlayerController_SetLoop(t *testing.T) {
	f := startedPlayer(t, 1)
	f.animator.reset()

	f.ctrl.SetLoop(true)

	assert.True(t, f.ctrl.State().LoopSingleTrack)
	assert.Equal(t, domain.IconLoopOn, f.loopIcon.icon)
	wobble := f.animator.on("loop")
	require.Len(t, wobble, 1)
	assert.Equal(t, ports.PropertyRotation, wobble[0].property)
	assert.InDelta(t, loopWobbleDegrees, wobble[0].to, 1e-9)

	toggled := f.events[len(f.events)-1].(domain.LoopToggledEvent)
	assert.True(t, toggled.Enabled)

	f.ctrl.ToggleLoop()
	assert.False(t, f.ctrl.State().LoopSingleTrack)
	assert.Equal(t, domain.IconLoopOff, f.loopIcon.icon)
}

func TestPlayerController_LoadFailure(t *testing.T) {
	f := startedPlayer(t, 3)
	f.audio.SetFailLoad(true)

	f.ctrl.NextSong()

	state := f.ctrl.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.False(t, state.IsPlaying)
	assert.False(t, f.audio.Loaded())
	assert.Equal(t, "Song t1", f.songName.text)
	assert.Equal(t, domain.IconPlay, f.playIcon.icon)
	assert.Equal(t, 1, f.selectedCount())

	var failure domain.TrackErrorEvent
	for _, e := range f.events {
		if te, ok := e.(domain.TrackErrorEvent); ok {
			failure = te
		}
	}
	assert.Equal(t, "t1", failure.Track.ID)
	var engineErr *domain.AudioEngineError
	assert.True(t, errors.As(failure.Error, &engineErr))
	for _, e := range f.events {
		if loaded, ok := e.(domain.TrackLoadedEvent); ok {
			assert.NotEqual(t, "t1", loaded.Track.ID, "failed loads are not announced")
		}
	}

	// Play and ticks stay no-ops until a track loads again.
	f.ctrl.Play()
	f.ctrl.Tick(time.Second)
	assert.Equal(t, 1, f.ctrl.State().CurrentIndex)

	f.audio.SetFailLoad(false)
	f.ctrl.NextSong()
	assert.Equal(t, 2, f.ctrl.State().CurrentIndex)
	assert.True(t, f.audio.IsPlaying())
}

func TestPlayerController_PlayFailure(t *testing.T) {
	f := startedPlayer(t, 2)
	f.ctrl.Pause()
	f.audio.SetFailPlay(true)

	f.ctrl.Play()

	assert.False(t, f.ctrl.State().IsPlaying)
	assert.Equal(t, domain.EventTrackError, f.events[len(f.events)-1].Type())
}

func TestPlayerController_WithoutBus(t *testing.T) {
	f := newPlayerFixture(t, &domain.SongCollection{Name: "A", Tracks: []domain.Track{track("a")}})
	cfg := newPlayerConfig(f, []*domain.SongCollection{{Name: "A", Tracks: []domain.Track{track("a")}}})
	cfg.Bus = nil
	cfg.Logger = nil

	ctrl, err := NewPlayerController(cfg)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		ctrl.Start()
		ctrl.SetLoop(true)
		ctrl.Tick(time.Second)
	})
}
