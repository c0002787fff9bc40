// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/gospin/internal/adapter/artwork"
	"github.com/tejashwikalptaru/gospin/internal/adapter/audio/beepaudio"
	"github.com/tejashwikalptaru/gospin/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/gospin/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gospin/internal/adapter/hostloop"
	"github.com/tejashwikalptaru/gospin/internal/adapter/metadata"
	"github.com/tejashwikalptaru/gospin/internal/adapter/repository/manifest"
	"github.com/tejashwikalptaru/gospin/internal/adapter/repository/memory"
	fyneui "github.com/tejashwikalptaru/gospin/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/logger"
	"github.com/tejashwikalptaru/gospin/internal/ports"
	"github.com/tejashwikalptaru/gospin/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	config Config

	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	audio    ports.AudioService
	clock    ports.Ticker
	loop     *hostloop.Loop

	// Repositories
	collections     ports.CollectionRepository
	preferencesRepo ports.PreferencesRepository

	// Services
	libraryService    *service.LibraryService
	preferenceService *service.PreferenceService
	controller        *service.PlayerController

	// UI
	window *fyneui.PlayerWindow

	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// CollectionsPath is the collections manifest (empty means the one used last time)
	CollectionsPath string

	// ScanTimeout bounds loading the manifest and scanning its directories
	ScanTimeout time.Duration

	// UseMockAudio plays silently on the mock engine, driven by the host loop
	UseMockAudio bool

	// ResetPreferences clears the saved preferences before they are applied
	ResetPreferences bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// TickInterval is the frame period of the host loop
	TickInterval time.Duration

	// SpinSpeed is the thumbnail rotation in degrees per second (0 means service.DefaultSpinSpeed)
	SpinSpeed float64

	// SeekStep is the jump of the seek shortcuts
	SeekStep time.Duration

	// EndTolerance is how close to the clip end a track counts as finished
	EndTolerance time.Duration

	// ArtworkSize and ArtworkCacheSize configure the thumbnail loader
	ArtworkSize      int
	ArtworkCacheSize int

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:            "com.gospin.app",
		AppName:          "GoSpin",
		ScanTimeout:      30 * time.Second,
		UseMockAudio:     false,
		LogLevel:         loggerCfg.Level,
		LogFormat:        loggerCfg.Format,
		TickInterval:     hostloop.DefaultInterval,
		SpinSpeed:        service.DefaultSpinSpeed,
		SeekStep:         service.DefaultSeekStep,
		EndTolerance:     service.DefaultEndTolerance,
		ArtworkSize:      artwork.DefaultSize,
		ArtworkCacheSize: artwork.DefaultCacheSize,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{config: config}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().Version))

	// Step 3: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(app.logger)
	app.eventBus.SubscribeAll(func(event domain.Event) {
		app.logger.Debug("event", slog.String("type", string(event.Type())))
	})

	// Step 4: Preferences
	app.preferencesRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())
	app.preferenceService = service.NewPreferenceService(app.logger, app.preferencesRepo, app.eventBus)
	if config.ResetPreferences {
		if err := app.preferenceService.ResetToDefaults(); err != nil {
			app.logger.Warn("failed to reset preferences", slog.Any("error", err))
		} else {
			app.logger.Info("preferences reset")
		}
	}

	// Step 5: Collections
	tags := metadata.NewTagReader()
	app.libraryService = service.NewLibraryService(app.logger, tags, beepaudio.SupportedFormats...)

	collections, err := app.loadCollections(config)
	if err != nil {
		_ = app.release()
		return nil, err
	}

	// Step 6: Create an audio engine
	app.audio, app.clock = app.newAudio(config)

	// Step 7: Create UI
	loader, err := artwork.NewLoader(tags, config.ArtworkSize, config.ArtworkCacheSize, app.logger)
	if err != nil {
		_ = app.release()
		return nil, fmt.Errorf("failed to create artwork loader: %w", err)
	}
	app.window = fyneui.NewPlayerWindow(app.fyneApp, config.AppName, loader, app.logger)
	app.window.Subscribe(app.eventBus)

	// Step 8: Create the controller and connect it to the window
	playerCfg := service.PlayerConfig{
		Collections:  collections,
		Audio:        app.audio,
		Bus:          app.eventBus,
		Logger:       app.logger,
		SpinSpeed:    config.SpinSpeed,
		EndTolerance: config.EndTolerance,
		SeekStep:     config.SeekStep,
	}
	app.window.Bind(&playerCfg)

	app.controller, err = service.NewPlayerController(playerCfg)
	if err != nil {
		_ = app.release()
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	app.window.Attach(app.controller)

	// Step 9: Host loop, ticking on the UI thread
	app.loop, err = hostloop.New(config.TickInterval, fyne.Do, app.logger)
	if err != nil {
		_ = app.release()
		return nil, fmt.Errorf("failed to create host loop: %w", err)
	}
	if app.clock != nil {
		// The silent engine must advance before the controller reads its position.
		app.loop.Add(app.clock)
	}
	app.loop.Add(app.controller)
	app.loop.Add(startHook(app.restoreLoopMode))

	return app, nil
}

// loadCollections reads the manifest named in config, or the one saved by the last run.
// Without any manifest the player starts with an empty playlist, and so does a saved
// manifest that can no longer be loaded.
func (a *Application) loadCollections(config Config) ([]*domain.SongCollection, error) {
	path := config.CollectionsPath
	saved := false
	if path == "" {
		path = a.preferenceService.GetCollectionsPath()
		saved = path != ""
	}

	if path == "" {
		a.logger.Warn("no collections manifest configured")
		a.collections = memory.NewCollectionRepository()
	} else {
		a.collections = manifest.NewCollectionRepository(path, a.libraryService, a.logger)
	}

	timeout := config.ScanTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ScanTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	collections, err := a.collections.LoadAll(ctx)
	if err != nil && saved {
		return a.forgetSavedManifest(path, err), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}

	if path != "" {
		if err := a.preferenceService.SetCollectionsPath(path); err != nil {
			a.logger.Warn("failed to save collections path", slog.Any("error", err))
		}
	}
	return collections, nil
}

// forgetSavedManifest replaces a saved manifest that failed to load with an empty
// collection set. A manifest that no longer exists is also dropped from the preferences.
func (a *Application) forgetSavedManifest(path string, err error) []*domain.SongCollection {
	a.logger.Warn("saved collections manifest unusable, starting empty",
		slog.String("path", path),
		slog.Any("error", err))

	if errors.Is(err, domain.ErrFileNotFound) {
		if err := a.preferenceService.SetCollectionsPath(""); err != nil {
			a.logger.Warn("failed to clear collections path", slog.Any("error", err))
		}
	}

	a.collections = memory.NewCollectionRepository()
	return nil
}

// newAudio picks the speaker engine, or the silent mock when asked to or when
// this build has no audio output. The mock comes with the clock that plays it:
// it measures clips with the beep decoders and advances with every frame.
func (a *Application) newAudio(config Config) (ports.AudioService, ports.Ticker) {
	if config.UseMockAudio || !beepaudio.AudioAvailable {
		if !config.UseMockAudio {
			a.logger.Warn("audio output not available in this build, playing silently")
		}
		engine := mock.NewEngine(a.logger.With(slog.String("engine", "mock")))
		engine.SetDurationSource(beepaudio.MeasureDuration)
		return engine, engine
	}
	return beepaudio.NewEngine(a.logger.With(slog.String("engine", "beep"))), nil
}

// restoreLoopMode applies the saved loop flag once the player has started.
func (a *Application) restoreLoopMode() {
	if a.preferenceService.GetLoopMode() {
		a.controller.SetLoop(true)
	}
}

// Start runs the player's start hook and begins ticking. Run calls it; tests
// may call it directly instead of opening the window.
func (a *Application) Start() {
	a.loop.Start()
}

// Run starts the application.
// This is called from main.go after the application is created and blocks
// until the window is closed.
func (a *Application) Run() error {
	a.logger.Info("GoSpin started", slog.String("version", GetVersionInfo().FullString()))
	a.Start()

	a.window.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times (idempotent).
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.loop != nil {
			a.loop.Stop()
		}
		if a.window != nil {
			a.window.Close()
		}
		err = a.release()

		a.logger.Info("application shutdown complete")
	})
	return err
}

// release closes the services in reverse order of creation.
func (a *Application) release() error {
	var firstErr error

	if a.audio != nil {
		if err := a.audio.Close(); err != nil {
			a.logger.Warn("failed to close audio engine", slog.Any("error", err))
			firstErr = err
		}
	}

	if a.preferenceService != nil {
		if err := a.preferenceService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown preference service", slog.Any("error", err))
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	return firstErr
}

// Controller returns the player controller.
func (a *Application) Controller() *service.PlayerController {
	return a.controller
}

// EventBus returns the application event bus.
func (a *Application) EventBus() ports.EventBus {
	return a.eventBus
}

// Audio returns the audio service.
func (a *Application) Audio() ports.AudioService {
	return a.audio
}

// Window returns the main window.
func (a *Application) Window() *fyneui.PlayerWindow {
	return a.window
}

// FyneApp returns the Fyne application.
func (a *Application) FyneApp() fyne.App {
	return a.fyneApp
}

// Preferences returns the preference service.
func (a *Application) Preferences() *service.PreferenceService {
	return a.preferenceService
}

// startHook adapts a function to ports.Starter.
type startHook func()

// Start implements ports.Starter.
func (h startHook) Start() {
	h()
}
