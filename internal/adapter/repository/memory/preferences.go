package memory

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// Preference keys.
const (
	keyLoop            = "preferences.loop"
	keyCollectionsPath = "preferences.collections_path"
)

// PreferencesRepository implements ports.PreferencesRepository using Fyne preferences.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.App.Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveLoopMode persists the loop mode state.
func (r *PreferencesRepository) SaveLoopMode(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetBool(keyLoop, enabled)
	return nil
}

// LoadLoopMode retrieves the saved loop mode state.
func (r *PreferencesRepository) LoadLoopMode() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.BoolWithFallback(keyLoop, false), nil
}

// SaveCollectionsPath persists the manifest path.
func (r *PreferencesRepository) SaveCollectionsPath(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyCollectionsPath, path)
	return nil
}

// LoadCollectionsPath retrieves the saved manifest path.
func (r *PreferencesRepository) LoadCollectionsPath() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.String(keyCollectionsPath), nil
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue(keyLoop)
	r.prefs.RemoveValue(keyCollectionsPath)
	return nil
}

var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
