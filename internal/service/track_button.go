package service

import (
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// Row animation settings.
const (
	rowTweenDuration = 120 * time.Millisecond
	rowSelectedScale = 1.05
	rowPulseScale    = 1.06
)

// TrackButtonView is one selectable playlist row bound to a track and its fixed playlist index.
// It only reports activation upward; the controller decides what gets selected.
type TrackButtonView struct {
	track    domain.Track
	index    int
	row      ports.TrackRow
	animator ports.Animator

	onActivated func(index int)
	onRender    func()

	selected  bool
	indicator domain.Indicator
}

// NewTrackButtonView binds track to row. The view starts deselected and idle.
// onActivated receives the bound index when the user activates the row, then onRender
// is called so the owner can refresh every row. Either callback may be nil.
func NewTrackButtonView(
	track domain.Track,
	index int,
	row ports.TrackRow,
	animator ports.Animator,
	onActivated func(index int),
	onRender func(),
) *TrackButtonView {
	view := &TrackButtonView{
		track:       track,
		index:       index,
		row:         row,
		animator:    animator,
		onActivated: onActivated,
		onRender:    onRender,
		indicator:   domain.IndicatorIdle,
	}

	row.Bind(track)
	row.SetIcon(domain.IndicatorIcon(domain.IndicatorIdle))
	row.SetOnActivated(view.Activate)

	return view
}

// Track returns the bound track.
func (v *TrackButtonView) Track() domain.Track {
	return v.track
}

// Index returns the bound playlist index.
func (v *TrackButtonView) Index() int {
	return v.index
}

// Selected reports whether the row is highlighted.
func (v *TrackButtonView) Selected() bool {
	return v.selected
}

// Indicator returns the playing indicator shown on the row.
func (v *TrackButtonView) Indicator() domain.Indicator {
	return v.indicator
}

// Select highlights the row. Selecting a selected row does nothing.
func (v *TrackButtonView) Select() {
	if v.selected {
		return
	}
	v.selected = true
	v.tweenSelection(rowSelectedScale, 1)
}

// Deselect removes the highlight. Deselecting an unselected row does nothing.
func (v *TrackButtonView) Deselect() {
	if !v.selected {
		return
	}
	v.selected = false
	v.tweenSelection(1, 0)
}

// SetPlayingIndicator changes the status icon. Switching to Playing pulses the row.
func (v *TrackButtonView) SetPlayingIndicator(indicator domain.Indicator) {
	if v.indicator == indicator {
		return
	}
	v.indicator = indicator
	v.row.SetIcon(domain.IndicatorIcon(indicator))

	if indicator == domain.IndicatorPlaying {
		v.pulse()
	}
}

// Activate handles a click on the row.
func (v *TrackButtonView) Activate() {
	if v.onActivated != nil {
		v.onActivated(v.index)
	}
	if v.onRender != nil {
		v.onRender()
	}
}

func (v *TrackButtonView) tweenSelection(scale, highlight float64) {
	if v.animator == nil {
		return
	}
	target := v.row.AnimationTarget()
	background := target.Background()

	v.animator.Cancel(background)
	v.animator.Animate(background, ports.PropertyHighlight, highlight, rowTweenDuration, ports.EaseOutQuad, nil)

	v.animator.Cancel(target)
	v.animator.Animate(target, ports.PropertyScale, scale, rowTweenDuration, ports.EaseOutQuad, nil)
}

func (v *TrackButtonView) pulse() {
	if v.animator == nil {
		return
	}
	target := v.row.AnimationTarget()

	v.animator.Cancel(target)
	v.animator.Animate(target, ports.PropertyScale, rowPulseScale, rowTweenDuration, ports.EaseOutQuad, func() {
		rest := 1.0
		if v.selected {
			rest = rowSelectedScale
		}
		v.animator.Animate(target, ports.PropertyScale, rest, rowTweenDuration, ports.EaseOutQuad, nil)
	})
}
