// Package metadata reads tag metadata and embedded artwork from audio files.
package metadata

import (
	"errors"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// TagReader reads ID3, MP4, FLAC and OGG tags with dhowden/tag.
type TagReader struct{}

// NewTagReader creates a new tag reader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTags returns the title, artist, album and picture presence of the file at path.
func (r *TagReader) ReadTags(path string) (*domain.TrackTags, error) {
	metadata, err := readMetadata(path)
	if err != nil {
		return nil, err
	}

	return &domain.TrackTags{
		Title:      strings.TrimSpace(metadata.Title()),
		Artist:     strings.TrimSpace(metadata.Artist()),
		Album:      strings.TrimSpace(metadata.Album()),
		HasPicture: metadata.Picture() != nil && len(metadata.Picture().Data) > 0,
	}, nil
}

// Picture returns the embedded picture of the file at path and its MIME type.
// Files without a picture return domain.ErrNoArtwork.
func (r *TagReader) Picture(path string) ([]byte, string, error) {
	metadata, err := readMetadata(path)
	if err != nil {
		return nil, "", err
	}

	picture := metadata.Picture()
	if picture == nil || len(picture.Data) == 0 {
		return nil, "", domain.ErrNoArtwork
	}
	return picture.Data, picture.MIMEType, nil
}

func readMetadata(path string) (tag.Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, domain.NewRepositoryError("read", "tags", "cannot open "+path, err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, domain.NewRepositoryError("read", "tags", "no readable tags in "+path, err)
	}
	return metadata, nil
}

var _ ports.TagReader = (*TagReader)(nil)
