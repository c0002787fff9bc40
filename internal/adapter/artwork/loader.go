// Package artwork loads track thumbnails and renders them as spinning discs.
package artwork

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log/slog"
	"os"

	"github.com/fogleman/gg"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// DefaultSize is the edge length of rendered thumbnails in pixels.
const DefaultSize = 256

// DefaultCacheSize is the number of decoded thumbnails kept in memory.
const DefaultCacheSize = 64

// PictureReader returns the picture embedded in an audio file.
type PictureReader interface {
	Picture(path string) ([]byte, string, error)
}

// Loader decodes thumbnails into round, square images and caches them by handle.
//
// Thread-safety: This implementation is thread-safe.
type Loader struct {
	logger      *slog.Logger
	pictures    PictureReader
	size        int
	cache       *lru.Cache[domain.ResourceHandle, image.Image]
	placeholder image.Image
}

// NewLoader creates a loader rendering size x size images and caching cacheSize of them.
// pictures resolves embedded artwork handles and may be nil.
func NewLoader(pictures PictureReader, size, cacheSize int, logger *slog.Logger) (*Loader, error) {
	if size <= 0 {
		return nil, domain.NewValidationError("size", size, "must be positive")
	}
	cache, err := lru.New[domain.ResourceHandle, image.Image](cacheSize)
	if err != nil {
		return nil, domain.NewValidationError("cacheSize", cacheSize, err.Error())
	}

	return &Loader{
		logger:      logger.With(slog.String("component", "artwork")),
		pictures:    pictures,
		size:        size,
		cache:       cache,
		placeholder: Placeholder(size),
	}, nil
}

// Load returns the rendered thumbnail for handle. Handles that cannot be
// resolved yield the placeholder disc.
func (l *Loader) Load(handle domain.ResourceHandle) image.Image {
	if handle == domain.NoResource {
		return l.placeholder
	}
	if img, ok := l.cache.Get(handle); ok {
		return img
	}

	img, err := l.decode(handle)
	if err != nil {
		l.logger.Debug("using placeholder artwork", slog.String("handle", string(handle)), slog.Any("error", err))
		return l.placeholder
	}

	disc := l.render(img)
	l.cache.Add(handle, disc)
	return disc
}

// Cached returns the number of cached thumbnails.
func (l *Loader) Cached() int {
	return l.cache.Len()
}

// Size returns the edge length of rendered thumbnails.
func (l *Loader) Size() int {
	return l.size
}

func (l *Loader) decode(handle domain.ResourceHandle) (image.Image, error) {
	var data []byte
	if handle.IsTagArtwork() {
		if l.pictures == nil {
			return nil, domain.ErrNoArtwork
		}
		picture, _, err := l.pictures.Picture(handle.Path())
		if err != nil {
			return nil, err
		}
		data = picture
	} else {
		file, err := os.ReadFile(handle.Path())
		if err != nil {
			return nil, domain.NewRepositoryError("Load", "artwork", "cannot read "+handle.Path(), err)
		}
		data = file
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewRepositoryError("Load", "artwork", "cannot decode "+string(handle), err)
	}
	return img, nil
}

// render scales img to cover the square and clips it to a disc.
func (l *Loader) render(img image.Image) image.Image {
	size := float64(l.size)
	bounds := img.Bounds()

	dc := gg.NewContext(l.size, l.size)
	dc.DrawCircle(size/2, size/2, size/2)
	dc.Clip()

	scale := max(size/float64(bounds.Dx()), size/float64(bounds.Dy()))
	dc.Translate(size/2, size/2)
	dc.Scale(scale, scale)
	dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)

	return dc.Image()
}

// Placeholder renders the record-like disc shown when a track has no artwork.
func Placeholder(size int) image.Image {
	s := float64(size)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(s/2, s/2, s/2)
	dc.SetHexColor("#222222")
	dc.Fill()

	dc.SetLineWidth(1)
	dc.SetColor(color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff})
	for r := s * 0.2; r < s/2-2; r += s / 24 {
		dc.DrawCircle(s/2, s/2, r)
		dc.Stroke()
	}

	dc.DrawCircle(s/2, s/2, s*0.12)
	dc.SetHexColor("#c0392b")
	dc.Fill()

	return dc.Image()
}

// Rotate returns img rotated by degrees around its center, on a canvas of the same size.
func Rotate(img image.Image, degrees float64) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dc := gg.NewContext(w, h)
	dc.RotateAbout(gg.Radians(degrees), float64(w)/2, float64(h)/2)
	dc.DrawImage(img, 0, 0)

	return dc.Image()
}
