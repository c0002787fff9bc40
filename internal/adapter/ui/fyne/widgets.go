package fyne

import (
	"image"
	"math"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gospin/internal/adapter/artwork"
	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// seekResolution is the slider step of the normalized progress bar.
const seekResolution = 0.001

// SeekBar is the normalized progress slider. User input is reported as a drag:
// the first change starts it, OnChangeEnded finishes it. Values written by the
// controller never count as user input.
type SeekBar struct {
	slider *widget.Slider

	programmatic bool
	dragging     bool

	onStart   func()
	onChanged func(float64)
	onEnd     func()
}

// NewSeekBar creates a progress slider at 0.
func NewSeekBar() *SeekBar {
	b := &SeekBar{slider: widget.NewSlider(0, 1)}
	b.slider.Step = seekResolution
	b.slider.OnChanged = b.changed
	b.slider.OnChangeEnded = b.ended
	return b
}

// Object returns the canvas object to place in a layout.
func (b *SeekBar) Object() fyneapp.CanvasObject {
	return b.slider
}

// OnDrag registers the drag handlers. Any of them may be nil.
func (b *SeekBar) OnDrag(start func(), changed func(float64), end func()) {
	b.onStart = start
	b.onChanged = changed
	b.onEnd = end
}

// Dragging reports whether the user is scrubbing.
func (b *SeekBar) Dragging() bool {
	return b.dragging
}

// Value implements ports.SliderBinding.
func (b *SeekBar) Value() float64 {
	return b.slider.Value
}

// SetValue implements ports.SliderBinding.
func (b *SeekBar) SetValue(value float64) {
	b.programmatic = true
	b.slider.SetValue(value)
	b.programmatic = false
}

func (b *SeekBar) changed(value float64) {
	if b.programmatic {
		return
	}
	if !b.dragging {
		b.dragging = true
		if b.onStart != nil {
			b.onStart()
		}
	}
	if b.onChanged != nil {
		b.onChanged(value)
	}
}

func (b *SeekBar) ended(value float64) {
	if b.programmatic {
		return
	}
	if !b.dragging {
		b.changed(value)
	}
	b.dragging = false
	if b.onEnd != nil {
		b.onEnd()
	}
}

// Thumbnail shows the cover of the current track and spins it.
type Thumbnail struct {
	image  *canvas.Image
	loader *artwork.Loader

	base  image.Image
	angle float64
}

// NewThumbnail creates a thumbnail showing the placeholder disc.
func NewThumbnail(loader *artwork.Loader) *Thumbnail {
	t := &Thumbnail{loader: loader}
	t.base = artwork.Placeholder(loader.Size())
	t.image = canvas.NewImageFromImage(t.base)
	t.image.FillMode = canvas.ImageFillContain
	t.image.SetMinSize(fyneapp.NewSquareSize(float32(loader.Size())))
	return t
}

// Object returns the canvas object to place in a layout.
func (t *Thumbnail) Object() fyneapp.CanvasObject {
	return t.image
}

// Angle returns the current rotation in degrees, in [0, 360).
func (t *Thumbnail) Angle() float64 {
	return t.angle
}

// SetImage implements ports.ImageBinding.
func (t *Thumbnail) SetImage(handle domain.ResourceHandle) {
	t.base = t.loader.Load(handle)
	t.render()
}

// Rotate implements ports.RotationBinding.
func (t *Thumbnail) Rotate(degrees float64) {
	t.angle = math.Mod(t.angle+degrees, 360)
	if t.angle < 0 {
		t.angle += 360
	}
	t.render()
}

// ResetRotation implements ports.RotationBinding.
func (t *Thumbnail) ResetRotation() {
	t.angle = 0
	t.render()
}

func (t *Thumbnail) render() {
	if t.angle == 0 {
		t.image.Image = t.base
	} else {
		t.image.Image = artwork.Rotate(t.base, t.angle)
	}
	t.image.Refresh()
}

// TransportButton is an icon button that can pulse.
type TransportButton struct {
	button *widget.Button
	box    *ScaleBox
	icon   domain.Icon
}

// NewTransportButton creates a button showing icon.
func NewTransportButton(icon domain.Icon, tapped func()) *TransportButton {
	b := &TransportButton{
		button: widget.NewButtonWithIcon("", iconResource(icon), tapped),
		icon:   icon,
	}
	b.box = NewScaleBox(b.button)
	return b
}

// Object returns the canvas object to place in a layout.
func (b *TransportButton) Object() fyneapp.CanvasObject {
	return b.box
}

// Animatable returns the element the pulse animation runs on.
func (b *TransportButton) Animatable() Animatable {
	return b.box
}

// OnTapped replaces the tap handler.
func (b *TransportButton) OnTapped(fn func()) {
	b.button.OnTapped = fn
}

// Icon returns the sprite on the button.
func (b *TransportButton) Icon() domain.Icon {
	return b.icon
}

// SetIcon implements ports.IconBinding.
func (b *TransportButton) SetIcon(icon domain.Icon) {
	b.icon = icon
	b.button.SetIcon(iconResource(icon))
}

// loopGlyphSize is the pixel size of the rendered loop glyph.
const loopGlyphSize = 48

// LoopToggle is the loop check box with a repeat glyph that wobbles on change.
type LoopToggle struct {
	check  *widget.Check
	glyph  *canvas.Image
	object fyneapp.CanvasObject

	active       bool
	angle        float64
	programmatic bool
	onChanged    func(bool)
}

// NewLoopToggle creates an unchecked toggle.
func NewLoopToggle() *LoopToggle {
	l := &LoopToggle{}
	l.check = widget.NewCheck("Loop", l.changed)
	l.glyph = canvas.NewImageFromImage(nil)
	l.glyph.FillMode = canvas.ImageFillContain
	l.glyph.SetMinSize(fyneapp.NewSquareSize(theme.IconInlineSize() * 1.5))
	l.object = container.NewHBox(l.glyph, l.check)
	l.render()
	return l
}

// Object returns the canvas object to place in a layout.
func (l *LoopToggle) Object() fyneapp.CanvasObject {
	return l.object
}

// OnChanged registers the handler for user toggles.
func (l *LoopToggle) OnChanged(fn func(bool)) {
	l.onChanged = fn
}

// Checked reports the state of the check box.
func (l *LoopToggle) Checked() bool {
	return l.check.Checked
}

// SetIcon implements ports.IconBinding. The check box follows the icon so that
// loop changes made elsewhere (keyboard) show up on the toggle.
func (l *LoopToggle) SetIcon(icon domain.Icon) {
	l.active = icon == domain.IconLoopOn
	if l.check.Checked != l.active {
		l.programmatic = true
		l.check.SetChecked(l.active)
		l.programmatic = false
	}
	l.render()
}

// AnimatedValue implements Animatable.
func (l *LoopToggle) AnimatedValue(property ports.AnimationProperty) float64 {
	if property == ports.PropertyRotation {
		return l.angle
	}
	return 0
}

// SetAnimatedValue implements Animatable.
func (l *LoopToggle) SetAnimatedValue(property ports.AnimationProperty, value float64) {
	if property == ports.PropertyRotation {
		l.angle = value
		l.render()
	}
}

func (l *LoopToggle) changed(checked bool) {
	if l.programmatic || l.onChanged == nil {
		return
	}
	l.onChanged(checked)
}

func (l *LoopToggle) render() {
	l.glyph.Image = artwork.LoopGlyph(loopGlyphSize, l.angle, l.active, theme.Color(theme.ColorNameForeground))
	l.glyph.Refresh()
}

var (
	_ ports.SliderBinding   = (*SeekBar)(nil)
	_ ports.ImageBinding    = (*Thumbnail)(nil)
	_ ports.RotationBinding = (*Thumbnail)(nil)
	_ ports.IconBinding     = (*TransportButton)(nil)
	_ ports.IconBinding     = (*LoopToggle)(nil)
	_ Animatable            = (*LoopToggle)(nil)
)
