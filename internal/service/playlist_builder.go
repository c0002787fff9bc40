package service

import (
	"github.com/samber/lo"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// BuildPlaylist flattens collections into one playlist, keeping collection order and the
// track order inside each collection. Nil collections are skipped and duplicates are kept.
func BuildPlaylist(collections []*domain.SongCollection) domain.Playlist {
	present := lo.Filter(collections, func(c *domain.SongCollection, _ int) bool {
		return c != nil
	})

	tracks := lo.FlatMap(present, func(c *domain.SongCollection, _ int) []domain.Track {
		return c.Tracks
	})

	return domain.Playlist(tracks)
}
