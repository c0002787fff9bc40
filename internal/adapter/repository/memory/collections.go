// Package memory provides an in-memory collection repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// CollectionRepository implements ports.CollectionRepository over collections held in memory.
// It serves runs without a manifest and tests.
//
// Thread-safe: All operations protected by sync.RWMutex.
type CollectionRepository struct {
	collections []*domain.SongCollection
	mu          sync.RWMutex
}

// NewCollectionRepository creates a repository holding collections in order. Nil entries are kept.
func NewCollectionRepository(collections ...*domain.SongCollection) *CollectionRepository {
	return &CollectionRepository{
		collections: slices.Clone(collections),
	}
}

// Add appends a collection.
func (r *CollectionRepository) Add(collection *domain.SongCollection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections = append(r.collections, collection)
}

// LoadAll returns the held collections in order.
func (r *CollectionRepository) LoadAll(ctx context.Context) ([]*domain.SongCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.collections), nil
}

var _ ports.CollectionRepository = (*CollectionRepository)(nil)
