package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/testutil"
)

func TestTagReader_ReadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	testutil.WriteID3File(t, path, " Night Drive ", "The Tapes", []byte{0x89, 'P', 'N', 'G'})

	tags, err := NewTagReader().ReadTags(path)
	require.NoError(t, err)

	assert.Equal(t, "Night Drive", tags.Title)
	assert.Equal(t, "The Tapes", tags.Artist)
	assert.True(t, tags.HasPicture)
}

func TestTagReader_ReadTagsWithoutPicture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	testutil.WriteID3File(t, path, "Plain", "", nil)

	tags, err := NewTagReader().ReadTags(path)
	require.NoError(t, err)

	assert.Equal(t, "Plain", tags.Title)
	assert.Empty(t, tags.Artist)
	assert.False(t, tags.HasPicture)

	_, _, err = NewTagReader().Picture(path)
	assert.ErrorIs(t, err, domain.ErrNoArtwork)
}

func TestTagReader_Picture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	art := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	testutil.WriteID3File(t, path, "Art", "A", art)

	data, mime, err := NewTagReader().Picture(path)
	require.NoError(t, err)

	assert.Equal(t, art, data)
	assert.Equal(t, "image/png", mime)
}

func TestTagReader_Errors(t *testing.T) {
	dir := t.TempDir()
	reader := NewTagReader()

	_, err := reader.ReadTags(filepath.Join(dir, "missing.mp3"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	untagged := filepath.Join(dir, "noise.wav")
	require.NoError(t, os.WriteFile(untagged, []byte("not an audio file at all"), 0o644))

	_, err = reader.ReadTags(untagged)
	var repoErr *domain.RepositoryError
	assert.ErrorAs(t, err, &repoErr)
}
