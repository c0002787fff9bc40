package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/logger"
)

type fakeTagReader struct {
	tags map[string]*domain.TrackTags
}

func (r *fakeTagReader) ReadTags(path string) (*domain.TrackTags, error) {
	tags, ok := r.tags[filepath.Base(path)]
	if !ok {
		return nil, errors.New("no tags")
	}
	return tags, nil
}

// createTestMusicFolder creates a folder with audio and non-audio files.
func createTestMusicFolder(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, file := range files {
		fullPath := filepath.Join(dir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, nil, 0o644))
	}
	return dir
}

func newTestLibraryService(tags map[string]*domain.TrackTags) *LibraryService {
	return NewLibraryService(logger.NewTestLogger(), &fakeTagReader{tags: tags})
}

func TestLibraryService_ScanCollection(t *testing.T) {
	dir := createTestMusicFolder(t,
		"b_song.mp3",
		"a_song.wav",
		"notes.txt",
		"song.flac",
		"disc2/c_song.MP3",
		"disc2/cover.jpg",
	)

	service := newTestLibraryService(map[string]*domain.TrackTags{
		"a_song.wav": {Title: "Alpha", Artist: "Ann", HasPicture: true},
		"b_song.mp3": {Title: "  ", Artist: "Bob"},
	})

	collection, err := service.ScanCollection(context.Background(), "Mix", dir)
	require.NoError(t, err)

	assert.Equal(t, "Mix", collection.Name)
	require.Len(t, collection.Tracks, 3)

	a, b, c := collection.Tracks[0], collection.Tracks[1], collection.Tracks[2]

	assert.Equal(t, "Alpha", a.Name)
	assert.Equal(t, "Ann", a.Author)
	assert.Equal(t, domain.ResourceHandle(filepath.Join(dir, "a_song.wav")), a.Audio)
	assert.True(t, a.Thumbnail.IsTagArtwork())
	assert.Equal(t, filepath.Join(dir, "a_song.wav"), a.Thumbnail.Path())

	assert.Equal(t, "b_song", b.Name, "blank title falls back to the file name")
	assert.Equal(t, "Bob", b.Author)
	assert.Equal(t, domain.NoResource, b.Thumbnail)

	assert.Equal(t, "c_song", c.Name)
	assert.Empty(t, c.Author)
	assert.Equal(t, domain.ResourceHandle(filepath.Join(dir, "disc2", "cover.jpg")), c.Thumbnail)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestLibraryService_ScanCollectionMissingDir(t *testing.T) {
	service := newTestLibraryService(nil)

	_, err := service.ScanCollection(context.Background(), "Missing", filepath.Join(t.TempDir(), "nope"))

	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	var serviceErr *domain.ServiceError
	assert.ErrorAs(t, err, &serviceErr)
}

func TestLibraryService_ScanCollectionCancelled(t *testing.T) {
	dir := createTestMusicFolder(t, "a.mp3", "b.mp3")
	service := newTestLibraryService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.ScanCollection(ctx, "Cancelled", dir)
	assert.ErrorIs(t, err, domain.ErrScanCancelled)

	// A cancelled scan does not block the next one.
	collection, err := service.ScanCollection(context.Background(), "Again", dir)
	require.NoError(t, err)
	assert.Len(t, collection.Tracks, 2)
}

func TestLibraryService_WithoutTagReader(t *testing.T) {
	dir := createTestMusicFolder(t, "Intro.mp3")
	service := NewLibraryService(logger.NewTestLogger(), nil)

	collection, err := service.ScanCollection(context.Background(), "Plain", dir)
	require.NoError(t, err)
	require.Len(t, collection.Tracks, 1)
	assert.Equal(t, "Intro", collection.Tracks[0].Name)
}

func TestLibraryService_ExtractTrack(t *testing.T) {
	dir := createTestMusicFolder(t, "one.mp3", "cover.png")
	service := newTestLibraryService(map[string]*domain.TrackTags{
		"one.mp3": {Title: "One", Artist: "U"},
	})

	track, err := service.ExtractTrack(filepath.Join(dir, "one.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "One", track.Name)
	assert.Equal(t, domain.ResourceHandle(filepath.Join(dir, "cover.png")), track.Thumbnail)

	_, err = service.ExtractTrack(filepath.Join(dir, "one.ogg"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = service.ExtractTrack(filepath.Join(dir, "two.mp3"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestLibraryService_SupportedFormats(t *testing.T) {
	service := newTestLibraryService(nil)

	assert.True(t, service.IsFormatSupported("/x/Song.MP3"))
	assert.True(t, service.IsFormatSupported("/x/song.wav"))
	assert.False(t, service.IsFormatSupported("/x/song.txt"))
}

func TestLibraryService_CustomFormats(t *testing.T) {
	dir := createTestMusicFolder(t, "a.mp3", "b.WAV", "c.flac")
	service := NewLibraryService(logger.NewTestLogger(), nil, ".WAV", ".flac")

	assert.False(t, service.IsFormatSupported("/x/a.mp3"))
	assert.True(t, service.IsFormatSupported("/x/b.wav"))

	collection, err := service.ScanCollection(context.Background(), "Custom", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, []string{collection.Tracks[0].Name, collection.Tracks[1].Name})
}
