// Package ports define repository interfaces for data access abstraction.
package ports

import (
	"context"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// CollectionRepository provides the authored song collections.
// The returned slice keeps authoring order and may contain nil entries for
// collections that were declared but left empty.
type CollectionRepository interface {
	// LoadAll returns every configured collection.
	LoadAll(ctx context.Context) ([]*domain.SongCollection, error)
}

// CollectionScanner builds collections and tracks from audio files on disk.
type CollectionScanner interface {
	// ScanCollection builds a collection from a directory of audio files.
	ScanCollection(ctx context.Context, name, dir string) (*domain.SongCollection, error)

	// ExtractTrack describes a single audio file from its tags.
	ExtractTrack(path string) (domain.Track, error)
}

// PreferencesRepository handles the persistence of user preferences.
// This abstracts the Fyne preferences storage.
//
// Thread-safety: Implementations must be thread-safe.
type PreferencesRepository interface {
	// SaveLoopMode persists the single-track loop flag.
	SaveLoopMode(enabled bool) error

	// LoadLoopMode returns the saved loop flag, false if none was saved.
	LoadLoopMode() (bool, error)

	// SaveCollectionsPath persists the manifest used by the last run.
	SaveCollectionsPath(path string) error

	// LoadCollectionsPath returns the saved manifest path, empty if none was saved.
	LoadCollectionsPath() (string, error)

	// Clear removes all saved preferences.
	Clear() error
}
