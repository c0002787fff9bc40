package service

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// coverNames are the sidecar images used as thumbnail when a file has no embedded picture.
var coverNames = []string{"cover.png", "cover.jpg", "cover.jpeg", "folder.png", "folder.jpg"}

// LibraryService builds song collections from audio files on disk.
// All operations are thread-safe via sync.RWMutex.
type LibraryService struct {
	// Dependencies (injected)
	logger *slog.Logger
	tags   ports.TagReader

	// State
	scanning      bool
	supportedExts []string

	// Concurrency control
	mu sync.RWMutex
}

// defaultFormats are the extensions scanned when none are given.
var defaultFormats = []string{".mp3", ".wav"}

// NewLibraryService creates a new library service for files with the given extensions
// (".mp3" and ".wav" when none are given). tags may be nil, in which case track names
// come from file names.
func NewLibraryService(logger *slog.Logger, tags ports.TagReader, formats ...string) *LibraryService {
	if len(formats) == 0 {
		formats = defaultFormats
	}
	return &LibraryService{
		logger: logger.With(slog.String("service", "library")),
		tags:   tags,
		supportedExts: lo.Map(formats, func(ext string, _ int) string {
			return strings.ToLower(ext)
		}),
	}
}

// ScanCollection walks dir recursively and returns one collection with a track per
// supported audio file, ordered by path. Unreadable files are skipped.
func (s *LibraryService) ScanCollection(ctx context.Context, name, dir string) (*domain.SongCollection, error) {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, domain.NewServiceError("LibraryService", "ScanCollection", "scan already in progress", nil)
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	if _, err := os.Stat(dir); err != nil {
		return nil, domain.NewServiceError("LibraryService", "ScanCollection", "cannot open "+dir, domain.ErrFileNotFound)
	}

	files, err := s.collectAudioFiles(ctx, dir)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrScanCancelled
		}
		return nil, domain.NewServiceError("LibraryService", "ScanCollection", "walk failed", err)
	}

	collection := &domain.SongCollection{
		Name:   name,
		Tracks: make([]domain.Track, 0, len(files)),
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return nil, domain.ErrScanCancelled
		}
		collection.Tracks = append(collection.Tracks, s.trackFromFile(path))
	}

	s.logger.Info("collection scanned",
		slog.String("collection", name),
		slog.String("dir", dir),
		slog.Int("tracks", len(collection.Tracks)))

	return collection, nil
}

// ExtractTrack builds a track for a single audio file. The manifest uses it for
// tracks listed without a name.
func (s *LibraryService) ExtractTrack(path string) (domain.Track, error) {
	if !s.IsFormatSupported(path) {
		return domain.Track{}, domain.ErrUnsupportedFormat
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return domain.Track{}, domain.ErrFileNotFound
	}

	return s.trackFromFile(path), nil
}

// IsFormatSupported checks if a file format is supported.
func (s *LibraryService) IsFormatSupported(path string) bool {
	return slices.Contains(s.supportedExts, strings.ToLower(filepath.Ext(path)))
}

func (s *LibraryService) trackFromFile(path string) domain.Track {
	track := domain.Track{
		ID:        uuid.NewString(),
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Audio:     domain.ResourceHandle(path),
		Thumbnail: sidecarCover(filepath.Dir(path)),
	}

	if s.tags == nil {
		return track
	}

	tags, err := s.tags.ReadTags(path)
	if err != nil {
		s.logger.Debug("no tags, using file name", slog.String("path", path), slog.Any("error", err))
		return track
	}

	track.Name = lo.CoalesceOrEmpty(strings.TrimSpace(tags.Title), track.Name)
	track.Author = strings.TrimSpace(tags.Artist)
	if tags.HasPicture {
		track.Thumbnail = domain.TagArtwork(path)
	}
	return track
}

// collectAudioFiles recursively collects all supported audio files in a directory.
func (s *LibraryService) collectAudioFiles(ctx context.Context, dir string) ([]string, error) {
	files := make([]string, 0)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			// Skip files/folders we can't access
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if s.IsFormatSupported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

func sidecarCover(dir string) domain.ResourceHandle {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return domain.ResourceHandle(path)
		}
	}
	return domain.NoResource
}
