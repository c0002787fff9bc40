// Package main is the production entry point for the GoSpin music player.
//
// GoSpin plays the tracks of a collections manifest one after another,
// spinning the artwork of the current track while it plays.
//
// Build:
//
//	go build -o build/gospin ./cmd
//
// Run:
//
//	./build/gospin --collections ~/Music/collections.yaml
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/gospin/internal/app"
	"github.com/tejashwikalptaru/gospin/internal/logger"
)

// envCollections names the manifest when --collections is not given.
const envCollections = "GOSPIN_COLLECTIONS"

type options struct {
	collections string
	mockAudio   bool
	resetPrefs  bool
	logLevel    string
	logFormat   string
	spinSpeed   float64
	seekStep    time.Duration
}

func main() {
	if err := newRootCmd(newOptions()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newOptions returns the flag defaults taken from app.DefaultConfig.
func newOptions() *options {
	defaults := app.DefaultConfig()
	return &options{
		logLevel:  defaults.LogLevel.String(),
		logFormat: defaults.LogFormat,
		spinSpeed: defaults.SpinSpeed,
		seekStep:  defaults.SeekStep,
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gospin",
		Short:        "Playlist music player with spinning artwork",
		Long:         "GoSpin plays every track of a collections manifest in order, looping the current track on request.",
		Version:      app.GetVersionInfo().FullString(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := opts.config()
			if err != nil {
				return err
			}
			return run(cmd, config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.collections, "collections", "c", "", "collections manifest (default $"+envCollections+", then the last one used)")
	flags.BoolVar(&opts.mockAudio, "mock-audio", false, "play silently without an audio device")
	flags.BoolVar(&opts.resetPrefs, "reset-preferences", false, "forget the saved loop mode and manifest path")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", opts.logFormat, "log format: text or json")
	flags.Float64Var(&opts.spinSpeed, "spin-speed", opts.spinSpeed, "artwork rotation in degrees per second")
	flags.DurationVar(&opts.seekStep, "seek-step", opts.seekStep, "jump of the seek shortcuts")

	return cmd
}

// config turns the flags into an application configuration.
func (o *options) config() (app.Config, error) {
	config := app.DefaultConfig()

	config.CollectionsPath = o.collections
	if config.CollectionsPath == "" {
		config.CollectionsPath = os.Getenv(envCollections)
	}
	config.UseMockAudio = o.mockAudio
	config.ResetPreferences = o.resetPrefs

	level, ok := logger.LookupLevel(o.logLevel)
	if !ok {
		return config, fmt.Errorf("unknown log level %q", o.logLevel)
	}
	config.LogLevel = level

	switch o.logFormat {
	case "text", "json":
		config.LogFormat = o.logFormat
	default:
		return config, fmt.Errorf("unknown log format %q", o.logFormat)
	}

	if o.spinSpeed <= 0 {
		return config, fmt.Errorf("spin speed must be positive, got %v", o.spinSpeed)
	}
	config.SpinSpeed = o.spinSpeed

	if o.seekStep <= 0 {
		return config, fmt.Errorf("seek step must be positive, got %v", o.seekStep)
	}
	config.SeekStep = o.seekStep

	return config, nil
}

func run(cmd *cobra.Command, config app.Config) error {
	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	return application.Run()
}
