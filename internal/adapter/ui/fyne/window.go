// Package fyne is the Fyne view of GoSpin. It implements the UI bindings the player
// controller drives and forwards user input to the controller.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gospin/internal/adapter/artwork"
	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
	"github.com/tejashwikalptaru/gospin/internal/service"
)

// Animation targets of the transport controls.
const (
	PlayPauseTarget ports.AnimationTarget = "play-pause"
	LoopTarget      ports.AnimationTarget = "loop"
)

// Window size.
const (
	WindowWidth  = 420
	WindowHeight = 640
)

// PlayerWindow is the main window. It is a passive view: every label, image, slider
// and icon is written by the controller, and user input is forwarded to it.
type PlayerWindow struct {
	app     fyneapp.App
	window  fyneapp.Window
	title   string
	logger  *slog.Logger
	loader  *artwork.Loader
	animate *Animator

	// UI components
	songName    *widget.Label
	author      *widget.Label
	currentTime *widget.Label
	totalTime   *widget.Label
	status      *widget.Label
	thumbnail   *Thumbnail
	seekBar     *SeekBar
	prevButton  *TransportButton
	playButton  *TransportButton
	nextButton  *TransportButton
	loop        *LoopToggle
	rows        *RowList

	subscriptions []domain.SubscriptionID
	bus           ports.EventBus

	// Lifecycle management
	closeOnce sync.Once
}

// NewPlayerWindow creates the main window of app. title is the application name.
func NewPlayerWindow(app fyneapp.App, title string, loader *artwork.Loader, logger *slog.Logger) *PlayerWindow {
	w := &PlayerWindow{
		app:     app,
		title:   title,
		logger:  logger.With(slog.String("component", "window")),
		loader:  loader,
		animate: NewAnimator(logger),
	}

	w.window = app.NewWindow(title)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(WindowWidth, WindowHeight))

	return w
}

// buildUI constructs the UI components.
func (w *PlayerWindow) buildUI() {
	w.songName = widget.NewLabel("")
	w.songName.TextStyle = fyneapp.TextStyle{Bold: true}
	w.songName.Alignment = fyneapp.TextAlignCenter
	w.songName.Truncation = fyneapp.TextTruncateEllipsis

	w.author = widget.NewLabel("")
	w.author.Alignment = fyneapp.TextAlignCenter
	w.author.Truncation = fyneapp.TextTruncateEllipsis

	w.currentTime = widget.NewLabel(service.FormatTime(0))
	w.totalTime = widget.NewLabel(service.FormatTime(0))
	w.status = widget.NewLabel("")
	w.status.Importance = widget.DangerImportance
	w.status.Hide()

	w.thumbnail = NewThumbnail(w.loader)
	w.seekBar = NewSeekBar()

	w.prevButton = NewTransportButton(domain.IconPrevious, nil)
	w.playButton = NewTransportButton(domain.IconPlay, nil)
	w.nextButton = NewTransportButton(domain.IconNext, nil)
	w.loop = NewLoopToggle()

	w.animate.Register(PlayPauseTarget, w.playButton.Animatable())
	w.animate.Register(LoopTarget, w.loop)

	w.rows = NewRowList(w.loader, w.animate)

	info := container.NewVBox(w.songName, w.author)
	progress := container.NewBorder(nil, nil, w.currentTime, w.totalTime, w.seekBar.Object())
	buttons := container.NewCenter(container.NewHBox(
		w.prevButton.Object(), w.playButton.Object(), w.nextButton.Object(), w.loop.Object(),
	))

	header := container.NewVBox(
		container.NewCenter(w.thumbnail.Object()),
		info,
		progress,
		buttons,
		w.status,
		widget.NewSeparator(),
	)
	w.window.SetContent(container.NewPadded(container.NewBorder(header, nil, nil, nil, w.rows.Object())))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// createMenu creates the application menu.
func (w *PlayerWindow) createMenu() []*fyneapp.Menu {
	about := fyneapp.NewMenuItem("About", func() {
		showAbout(w.window, w.title)
	})
	return []*fyneapp.Menu{fyneapp.NewMenu("Help", about)}
}

// Bind fills the view fields of cfg with this window's elements.
func (w *PlayerWindow) Bind(cfg *service.PlayerConfig) {
	cfg.SongName = w.songName
	cfg.Author = w.author
	cfg.CurrentTime = w.currentTime
	cfg.TotalTime = w.totalTime
	cfg.Thumbnail = w.thumbnail
	cfg.ThumbnailRotation = w.thumbnail
	cfg.Progress = w.seekBar
	cfg.PlayPauseIcon = w.playButton
	cfg.LoopIcon = w.loop
	cfg.PlayPauseTarget = PlayPauseTarget
	cfg.LoopTarget = LoopTarget
	cfg.Rows = w.rows
	cfg.Animator = w.animate
}

// Attach forwards user input to the controller.
func (w *PlayerWindow) Attach(c *service.PlayerController) {
	w.prevButton.OnTapped(c.PreviousSong)
	w.playButton.OnTapped(c.TogglePlayPause)
	w.nextButton.OnTapped(c.NextSong)
	w.seekBar.OnDrag(c.StartDrag, c.OnSeekBarChanged, c.EndDrag)
	w.loop.OnChanged(c.SetLoop)
	w.addShortcuts(c)
}

// addShortcuts adds keyboard shortcuts.
func (w *PlayerWindow) addShortcuts(c *service.PlayerController) {
	w.window.Canvas().SetOnTypedKey(func(event *fyneapp.KeyEvent) {
		switch event.Name {
		case fyneapp.KeySpace:
			c.TogglePlayPause()
		case fyneapp.KeyRight:
			c.SeekForward()
		case fyneapp.KeyLeft:
			c.SeekBackward()
		}
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyRight,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		c.NextSong()
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyLeft,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		c.PreviousSong()
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyL,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		c.ToggleLoop()
	})
}

// Subscribe shows the loaded track in the window title and audio errors in the
// status line.
func (w *PlayerWindow) Subscribe(bus ports.EventBus) {
	w.bus = bus
	w.subscriptions = append(w.subscriptions,
		bus.Subscribe(domain.EventTrackLoaded, func(event domain.Event) {
			e, ok := event.(domain.TrackLoadedEvent)
			if !ok {
				return
			}
			w.window.SetTitle(windowTitle(w.title, e.Track))
			w.status.Hide()
		}),
		bus.Subscribe(domain.EventTrackError, func(event domain.Event) {
			e, ok := event.(domain.TrackErrorEvent)
			if !ok {
				return
			}
			w.status.SetText(fmt.Sprintf("Cannot play %q: %v", e.Track.Name, e.Error))
			w.status.Show()
		}),
	)
}

// windowTitle formats "Name - Author | App", leaving out empty parts.
func windowTitle(app string, track domain.Track) string {
	switch {
	case track.Name == "":
		return app
	case track.Author == "":
		return fmt.Sprintf("%s | %s", track.Name, app)
	default:
		return fmt.Sprintf("%s - %s | %s", track.Name, track.Author, app)
	}
}

// Window returns the underlying Fyne window.
func (w *PlayerWindow) Window() fyneapp.Window {
	return w.window
}

// Animator returns the animator running the window's tweens.
func (w *PlayerWindow) Animator() *Animator {
	return w.animate
}

// Rows returns the playlist rows.
func (w *PlayerWindow) Rows() []*TrackRow {
	return w.rows.Rows()
}

// ShowAndRun shows the window and runs the application event loop.
func (w *PlayerWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close unsubscribes from the bus and closes the window.
// It's safe to call multiple times (idempotent).
func (w *PlayerWindow) Close() {
	w.closeOnce.Do(func() {
		if w.bus != nil {
			for _, id := range w.subscriptions {
				w.bus.Unsubscribe(id)
			}
		}
		w.window.Close()
	})
}
