package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// iconResource maps a sprite to the theme icon that draws it.
func iconResource(icon domain.Icon) fyneapp.Resource {
	switch icon {
	case domain.IconPlay:
		return theme.MediaPlayIcon()
	case domain.IconPause:
		return theme.MediaPauseIcon()
	case domain.IconLoopOn:
		return theme.NewPrimaryThemedResource(theme.MediaReplayIcon())
	case domain.IconLoopOff:
		return theme.NewDisabledResource(theme.MediaReplayIcon())
	case domain.IconRowPlaying:
		return theme.NewPrimaryThemedResource(theme.VolumeUpIcon())
	case domain.IconPrevious:
		return theme.MediaSkipPreviousIcon()
	case domain.IconNext:
		return theme.MediaSkipNextIcon()
	case domain.IconRowPaused:
		return theme.MediaPauseIcon()
	default:
		return theme.MediaMusicIcon()
	}
}
