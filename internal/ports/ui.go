// Package ports define the UI binding interfaces.
// These interfaces let the controller update the view without depending on Fyne directly.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// Thread-safety: every binding, row and animator method is called from the UI thread.

// TextBinding is a label-like element.
type TextBinding interface {
	SetText(text string)
}

// ImageBinding is an element that shows an image resource.
type ImageBinding interface {
	SetImage(handle domain.ResourceHandle)
}

// SliderBinding is a normalized [0,1] slider.
type SliderBinding interface {
	Value() float64
	SetValue(value float64)
}

// RotationBinding is an element that can be rotated around its centre.
type RotationBinding interface {
	// Rotate adds degrees to the current angle.
	Rotate(degrees float64)

	// ResetRotation returns the element to its upright orientation.
	ResetRotation()
}

// IconBinding is an element that shows one of the known sprites.
type IconBinding interface {
	SetIcon(icon domain.Icon)
}

// TrackRow is the rendering surface of a single playlist row.
type TrackRow interface {
	// Bind shows the track's name, author and thumbnail.
	Bind(track domain.Track)

	// SetIcon changes the status sprite of the row.
	SetIcon(icon domain.Icon)

	// SetOnActivated registers the click handler.
	SetOnActivated(fn func())

	// AnimationTarget returns the target used for the row's scale and highlight tweens.
	AnimationTarget() AnimationTarget
}

// TrackRowFactory creates the list rows for a playlist.
type TrackRowFactory interface {
	// NewRows discards any existing rows and returns one row per playlist entry, in order.
	NewRows(count int) []TrackRow
}

// AnimationTarget identifies the object an animation runs on.
type AnimationTarget string

// Background returns the target of the highlight layer behind t.
func (t AnimationTarget) Background() AnimationTarget {
	return t + "/background"
}

// AnimationProperty is the animated property.
type AnimationProperty int

const (
	// PropertyScale is a uniform scale factor (1 = natural size).
	PropertyScale AnimationProperty = iota

	// PropertyRotation is the rotation around the Z axis in degrees.
	PropertyRotation

	// PropertyHighlight blends from the normal colour (0) to the selected colour (1).
	PropertyHighlight
)

// Easing is the animation curve.
type Easing int

const (
	EaseLinear Easing = iota
	EaseOutQuad
	EaseInOut
)

// Animator runs cosmetic tweens. Only one animation per target and property is active;
// callers cancel a target before starting a conflicting animation on it.
type Animator interface {
	// Cancel stops every running animation on target. Completion callbacks are not invoked.
	Cancel(target AnimationTarget)

	// Animate tweens property of target to the value over d and calls onComplete (may be nil).
	Animate(target AnimationTarget, property AnimationProperty, to float64, d time.Duration, easing Easing, onComplete func())
}

// Starter is a component with a start hook, invoked once by the host before the first tick.
type Starter interface {
	Start()
}

// Ticker is a component with a per-frame hook.
type Ticker interface {
	Tick(dt time.Duration)
}
