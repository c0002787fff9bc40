// Package hostloop drives frame-based components. It runs their start hooks once and then
// calls their tick hooks at a fixed interval with the real time elapsed since the last frame.
package hostloop

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// DefaultInterval is roughly one frame at 60 Hz.
const DefaultInterval = 16 * time.Millisecond

// Dispatcher runs fn on the UI thread. Production code passes fyne.Do.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) {
	fn()
}

// Loop owns the ticker goroutine.
//
// Thread-safety: Start and Stop may be called from any goroutine. Components only
// ever run through the dispatcher.
type Loop struct {
	logger   *slog.Logger
	interval time.Duration
	dispatch Dispatcher
	now      func() time.Time

	mu       sync.Mutex
	starters []ports.Starter
	tickers  []ports.Ticker
	running  bool
	stopped  bool
	frames   uint64

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a stopped loop. A nil dispatcher calls components directly.
func New(interval time.Duration, dispatch Dispatcher, logger *slog.Logger) (*Loop, error) {
	if interval <= 0 {
		return nil, domain.NewValidationError("interval", interval, "must be positive")
	}
	if dispatch == nil {
		dispatch = Direct
	}

	return &Loop{
		logger:   logger.With(slog.String("component", "hostloop")),
		interval: interval,
		dispatch: dispatch,
		now:      time.Now,
		stop:     make(chan struct{}),
	}, nil
}

// Add registers a component. Components implementing ports.Starter are started by Start;
// components implementing ports.Ticker receive every frame. Others are ignored.
func (l *Loop) Add(component any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	starter, isStarter := component.(ports.Starter)
	ticker, isTicker := component.(ports.Ticker)
	if isStarter {
		l.starters = append(l.starters, starter)
	}
	if isTicker {
		l.tickers = append(l.tickers, ticker)
	}
	if !isStarter && !isTicker {
		l.logger.Warn("component has no lifecycle hooks")
	}
}

// Start runs the start hooks through the dispatcher, then starts ticking.
// Only the first call has an effect; a stopped loop cannot be restarted.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running || l.stopped {
		l.mu.Unlock()
		return
	}
	l.running = true
	starters := append([]ports.Starter(nil), l.starters...)
	l.wg.Add(1)
	l.mu.Unlock()

	l.dispatch(func() {
		for _, s := range starters {
			s.Start()
		}
	})

	go l.run()
	l.logger.Debug("host loop started", slog.Duration("interval", l.interval))
}

// Stop ends the ticker goroutine and waits for it to exit. It is safe to call
// multiple times and before Start.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.running = false
	close(l.stop)

	// Release lock before waiting for the goroutine to exit
	l.mu.Unlock()
	l.wg.Wait()

	l.logger.Debug("host loop stopped", slog.Uint64("frames", l.Frames()))
}

// Frames returns the number of dispatched frames.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Step dispatches one frame of dt right away, for hosts that drive frames themselves.
// A stopped loop ignores it.
func (l *Loop) Step(dt time.Duration) {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()

	if stopped {
		return
	}
	l.frame(dt)
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.now()
	for {
		select {
		case <-l.stop:
			return

		case <-ticker.C:
			now := l.now()
			dt := now.Sub(last)
			last = now
			l.frame(dt)
		}
	}
}

func (l *Loop) frame(dt time.Duration) {
	l.mu.Lock()
	tickers := append([]ports.Ticker(nil), l.tickers...)
	l.frames++
	l.mu.Unlock()

	l.dispatch(func() {
		for _, t := range tickers {
			t.Tick(dt)
		}
	})
}
