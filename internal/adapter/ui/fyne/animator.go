package fyne

import (
	"log/slog"
	"time"

	fyneapp "fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// Animatable is a view element whose properties the Animator can tween.
type Animatable interface {
	// AnimatedValue returns the current value of property.
	AnimatedValue(property ports.AnimationProperty) float64

	// SetAnimatedValue applies an intermediate value of property.
	SetAnimatedValue(property ports.AnimationProperty, value float64)
}

type runningAnimation struct {
	anim *fyneapp.Animation
	done bool
}

// Animator runs tweens with fyne.Animation on registered targets.
//
// Thread-safety: must be used from the UI thread, where Fyne also ticks animations.
type Animator struct {
	logger  *slog.Logger
	targets map[ports.AnimationTarget]Animatable
	running map[ports.AnimationTarget][]*runningAnimation
}

// NewAnimator creates an animator without targets.
func NewAnimator(logger *slog.Logger) *Animator {
	return &Animator{
		logger:  logger.With(slog.String("component", "animator")),
		targets: make(map[ports.AnimationTarget]Animatable),
		running: make(map[ports.AnimationTarget][]*runningAnimation),
	}
}

// Register binds target to a view element, replacing any previous binding.
func (a *Animator) Register(target ports.AnimationTarget, object Animatable) {
	a.Cancel(target)
	a.targets[target] = object
}

// Unregister stops the animations of target and forgets it.
func (a *Animator) Unregister(target ports.AnimationTarget) {
	a.Cancel(target)
	delete(a.targets, target)
}

// Running returns the number of unfinished animations on target.
func (a *Animator) Running(target ports.AnimationTarget) int {
	return len(a.running[target])
}

// Cancel stops every running animation on target without calling completion callbacks.
func (a *Animator) Cancel(target ports.AnimationTarget) {
	for _, r := range a.running[target] {
		r.done = true
		r.anim.Stop()
	}
	delete(a.running, target)
}

// Animate tweens property of target from its current value to the given one.
// Unknown targets complete immediately.
func (a *Animator) Animate(
	target ports.AnimationTarget,
	property ports.AnimationProperty,
	to float64,
	d time.Duration,
	easing ports.Easing,
	onComplete func(),
) {
	object, ok := a.targets[target]
	if !ok {
		a.logger.Debug("animation on unknown target", slog.String("target", string(target)))
		if onComplete != nil {
			onComplete()
		}
		return
	}

	from := object.AnimatedValue(property)
	entry := &runningAnimation{}
	entry.anim = fyneapp.NewAnimation(d, func(progress float32) {
		if entry.done {
			return
		}
		object.SetAnimatedValue(property, from+(to-from)*float64(progress))
		if progress < 1 {
			return
		}
		entry.done = true
		a.remove(target, entry)
		if onComplete != nil {
			onComplete()
		}
	})
	entry.anim.Curve = curve(easing)

	a.running[target] = append(a.running[target], entry)
	entry.anim.Start()
}

func (a *Animator) remove(target ports.AnimationTarget, entry *runningAnimation) {
	list := a.running[target]
	for i, r := range list {
		if r == entry {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(a.running, target)
		return
	}
	a.running[target] = list
}

func curve(easing ports.Easing) fyneapp.AnimationCurve {
	switch easing {
	case ports.EaseOutQuad:
		return fyneapp.AnimationEaseOut
	case ports.EaseInOut:
		return fyneapp.AnimationEaseInOut
	default:
		return fyneapp.AnimationLinear
	}
}

var _ ports.Animator = (*Animator)(nil)
