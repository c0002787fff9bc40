// Package manifest loads song collections from a YAML manifest.
//
// A manifest lists collections in playback order:
//
//	collections:
//	  - name: Night Drive
//	    tracks:
//	      - name: Neon
//	        author: The Tapes
//	        audio: audio/neon.mp3
//	        thumbnail: art/neon.png
//	      - audio: audio/untitled.mp3
//	  - null
//	  - name: Imports
//	    dir: ~/Music/imports
//
// Relative paths resolve against the manifest directory. A track without a name
// takes name, author and artwork from the tags of its audio file. A thumbnail of the form
// "tag:<audio path>" uses the picture embedded in that file. A null entry is kept
// as a nil collection.
package manifest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

type document struct {
	Collections []*collectionEntry `yaml:"collections"`
}

type collectionEntry struct {
	Name   string       `yaml:"name"`
	Dir    string       `yaml:"dir,omitempty"`
	Tracks []trackEntry `yaml:"tracks,omitempty"`
}

type trackEntry struct {
	ID        string `yaml:"id,omitempty"`
	Name      string `yaml:"name"`
	Author    string `yaml:"author,omitempty"`
	Audio     string `yaml:"audio"`
	Thumbnail string `yaml:"thumbnail,omitempty"`
}

// CollectionRepository implements ports.CollectionRepository over a manifest file.
type CollectionRepository struct {
	path    string
	scanner ports.CollectionScanner
	logger  *slog.Logger
}

// NewCollectionRepository creates a repository for the manifest at path.
// scanner expands "dir" entries and may be nil when the manifest has none.
func NewCollectionRepository(path string, scanner ports.CollectionScanner, logger *slog.Logger) *CollectionRepository {
	return &CollectionRepository{
		path:    path,
		scanner: scanner,
		logger:  logger.With(slog.String("repository", "manifest")),
	}
}

// LoadAll reads the manifest and returns its collections in order.
func (r *CollectionRepository) LoadAll(ctx context.Context) ([]*domain.SongCollection, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewRepositoryError("LoadAll", "manifest", r.path, domain.ErrFileNotFound)
		}
		return nil, domain.NewRepositoryError("LoadAll", "manifest", "failed to read "+r.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "manifest", "failed to parse "+r.path, err)
	}

	base := filepath.Dir(r.path)
	collections := make([]*domain.SongCollection, 0, len(doc.Collections))

	for i, entry := range doc.Collections {
		if entry == nil {
			r.logger.Debug("empty collection slot", slog.Int("position", i))
			collections = append(collections, nil)
			continue
		}

		collection, err := r.buildCollection(ctx, base, entry)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}

	r.logger.Info("manifest loaded",
		slog.String("path", r.path),
		slog.Int("collections", len(collections)))

	return collections, nil
}

func (r *CollectionRepository) buildCollection(ctx context.Context, base string, entry *collectionEntry) (*domain.SongCollection, error) {
	collection := &domain.SongCollection{
		Name:   entry.Name,
		Tracks: make([]domain.Track, 0, len(entry.Tracks)),
	}

	for _, t := range entry.Tracks {
		if t.Audio == "" {
			r.logger.Warn("track without audio", slog.String("collection", entry.Name), slog.String("track", t.Name))
		}
		track := domain.Track{
			ID:        lo.CoalesceOrEmpty(t.ID, uuid.NewString()),
			Name:      t.Name,
			Author:    t.Author,
			Audio:     resolve(base, t.Audio),
			Thumbnail: resolveThumbnail(base, t.Thumbnail),
		}
		if track.Name == "" && track.Audio != domain.NoResource {
			track = r.describe(track)
		}
		collection.Tracks = append(collection.Tracks, track)
	}

	if entry.Dir == "" {
		return collection, nil
	}

	if r.scanner == nil {
		return nil, domain.NewRepositoryError("LoadAll", "manifest", "collection "+entry.Name+" uses dir but no scanner is configured", nil)
	}

	scanned, err := r.scanner.ScanCollection(ctx, entry.Name, expandPath(base, entry.Dir))
	if err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "manifest", "failed to scan collection "+entry.Name, err)
	}
	collection.Tracks = append(collection.Tracks, scanned.Tracks...)

	return collection, nil
}

// describe fills an unnamed track from the tags of its audio file. Fields set in the
// manifest win; without readable tags the file name is used.
func (r *CollectionRepository) describe(track domain.Track) domain.Track {
	path := track.Audio.Path()
	fileName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if r.scanner == nil {
		track.Name = fileName
		return track
	}

	found, err := r.scanner.ExtractTrack(path)
	if err != nil {
		r.logger.Warn("cannot describe track", slog.String("path", path), slog.Any("error", err))
		track.Name = fileName
		return track
	}

	track.Name = lo.CoalesceOrEmpty(found.Name, fileName)
	track.Author = lo.CoalesceOrEmpty(track.Author, found.Author)
	track.Thumbnail = lo.CoalesceOrEmpty(track.Thumbnail, found.Thumbnail)
	return track
}

func resolve(base, path string) domain.ResourceHandle {
	if path == "" {
		return domain.NoResource
	}
	return domain.ResourceHandle(expandPath(base, path))
}

func resolveThumbnail(base, value string) domain.ResourceHandle {
	handle := domain.ResourceHandle(value)
	if handle.IsTagArtwork() {
		return domain.TagArtwork(expandPath(base, handle.Path()))
	}
	return resolve(base, value)
}

func expandPath(base, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

var _ ports.CollectionRepository = (*CollectionRepository)(nil)
