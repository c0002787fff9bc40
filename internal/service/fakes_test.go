package service

import (
	"fmt"
	"time"

	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

type fakeText struct {
	text   string
	writes int
}

func (f *fakeText) SetText(text string) {
	f.text = text
	f.writes++
}

type fakeImage struct {
	handle domain.ResourceHandle
}

func (f *fakeImage) SetImage(handle domain.ResourceHandle) {
	f.handle = handle
}

type fakeSlider struct {
	value  float64
	writes int
}

func (f *fakeSlider) Value() float64 {
	return f.value
}

func (f *fakeSlider) SetValue(value float64) {
	f.value = value
	f.writes++
}

type fakeRotation struct {
	angle  float64
	resets int
}

func (f *fakeRotation) Rotate(degrees float64) {
	f.angle += degrees
}

func (f *fakeRotation) ResetRotation() {
	f.angle = 0
	f.resets++
}

type fakeIcon struct {
	icon domain.Icon
	set  bool
}

func (f *fakeIcon) SetIcon(icon domain.Icon) {
	f.icon = icon
	f.set = true
}

type fakeRow struct {
	target    ports.AnimationTarget
	track     domain.Track
	icon      domain.Icon
	icons     []domain.Icon
	activated func()
}

func (r *fakeRow) Bind(track domain.Track) {
	r.track = track
}

func (r *fakeRow) SetIcon(icon domain.Icon) {
	r.icon = icon
	r.icons = append(r.icons, icon)
}

func (r *fakeRow) SetOnActivated(fn func()) {
	r.activated = fn
}

func (r *fakeRow) AnimationTarget() ports.AnimationTarget {
	return r.target
}

// click simulates the user activating the row.
func (r *fakeRow) click() {
	if r.activated != nil {
		r.activated()
	}
}

type fakeRowFactory struct {
	rows []*fakeRow
}

func (f *fakeRowFactory) NewRows(count int) []ports.TrackRow {
	f.rows = make([]*fakeRow, count)
	rows := make([]ports.TrackRow, count)
	for i := range rows {
		f.rows[i] = &fakeRow{target: ports.AnimationTarget(fmt.Sprintf("row-%d", i))}
		rows[i] = f.rows[i]
	}
	return rows
}

type animation struct {
	target     ports.AnimationTarget
	property   ports.AnimationProperty
	to         float64
	duration   time.Duration
	easing     ports.Easing
	onComplete func()
}

// fakeAnimator records animations. Completion callbacks run only through finish.
type fakeAnimator struct {
	cancels    []ports.AnimationTarget
	animations []animation
	running    map[ports.AnimationTarget][]animation
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{running: make(map[ports.AnimationTarget][]animation)}
}

func (a *fakeAnimator) Cancel(target ports.AnimationTarget) {
	a.cancels = append(a.cancels, target)
	delete(a.running, target)
}

func (a *fakeAnimator) Animate(target ports.AnimationTarget, property ports.AnimationProperty, to float64, d time.Duration, easing ports.Easing, onComplete func()) {
	anim := animation{target: target, property: property, to: to, duration: d, easing: easing, onComplete: onComplete}
	a.animations = append(a.animations, anim)
	a.running[target] = append(a.running[target], anim)
}

// finish completes every running animation on target.
func (a *fakeAnimator) finish(target ports.AnimationTarget) {
	running := a.running[target]
	delete(a.running, target)
	for _, anim := range running {
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}
}

func (a *fakeAnimator) on(target ports.AnimationTarget) []animation {
	var out []animation
	for _, anim := range a.animations {
		if anim.target == target {
			out = append(out, anim)
		}
	}
	return out
}

func (a *fakeAnimator) reset() {
	a.cancels = nil
	a.animations = nil
}
