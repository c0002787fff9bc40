package service

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// PreferenceService keeps the user settings that outlive a run: the loop flag and the
// collections manifest. Loop changes published on the bus are saved as they happen.
// All operations are thread-safe via sync.RWMutex.
type PreferenceService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.PreferencesRepository
	bus        ports.EventBus

	// Cached preferences
	loopEnabled     bool
	collectionsPath string
	subscription    domain.SubscriptionID

	// Concurrency control
	mu sync.RWMutex
}

// NewPreferenceService creates a preference service and loads the saved values.
// bus may be nil, in which case loop changes are only saved through SetLoopMode.
func NewPreferenceService(
	logger *slog.Logger,
	repository ports.PreferencesRepository,
	bus ports.EventBus,
) *PreferenceService {
	service := &PreferenceService{
		logger:     logger.With(slog.String("service", "preference")),
		repository: repository,
		bus:        bus,
	}

	service.loadPreferences()

	if bus != nil {
		service.subscription = bus.Subscribe(domain.EventLoopToggled, service.onLoopToggled)
	}

	return service
}

// loadPreferences loads all preferences from repository into cache.
func (s *PreferenceService) loadPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loop, err := s.repository.LoadLoopMode(); err == nil {
		s.loopEnabled = loop
	} else {
		s.logger.Warn("failed to load loop mode", slog.Any("error", err))
	}

	if path, err := s.repository.LoadCollectionsPath(); err == nil {
		s.collectionsPath = path
	} else {
		s.logger.Warn("failed to load collections path", slog.Any("error", err))
	}
}

func (s *PreferenceService) onLoopToggled(event domain.Event) {
	e, ok := event.(domain.LoopToggledEvent)
	if !ok {
		return
	}
	if err := s.SetLoopMode(e.Enabled); err != nil {
		s.logger.Warn("failed to save loop mode", slog.Any("error", err))
	}
}

// GetLoopMode returns the saved loop mode preference.
func (s *PreferenceService) GetLoopMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loopEnabled
}

// SetLoopMode saves the loop mode preference.
func (s *PreferenceService) SetLoopMode(enabled bool) error {
	s.mu.Lock()
	s.loopEnabled = enabled
	s.mu.Unlock()

	return s.repository.SaveLoopMode(enabled)
}

// GetCollectionsPath returns the manifest used by the last run.
func (s *PreferenceService) GetCollectionsPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectionsPath
}

// SetCollectionsPath saves the manifest path.
func (s *PreferenceService) SetCollectionsPath(path string) error {
	s.mu.Lock()
	s.collectionsPath = path
	s.mu.Unlock()

	return s.repository.SaveCollectionsPath(path)
}

// ResetToDefaults resets all preferences to default values.
func (s *PreferenceService) ResetToDefaults() error {
	s.mu.Lock()
	s.loopEnabled = false
	s.collectionsPath = ""
	s.mu.Unlock()

	return s.repository.Clear()
}

// Shutdown stops following loop changes.
func (s *PreferenceService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bus != nil && s.subscription != "" {
		s.bus.Unsubscribe(s.subscription)
		s.subscription = ""
	}
	return nil
}
