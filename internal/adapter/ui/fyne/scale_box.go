package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// scaleHeadroom is the largest scale a ScaleBox can show without clipping.
const scaleHeadroom = 1.2

// ScaleBox shows its content centred at a variable scale. At scale 1 the content
// takes 1/scaleHeadroom of the box, so pulses up to scaleHeadroom stay inside it.
type ScaleBox struct {
	widget.BaseWidget

	content fyneapp.CanvasObject
	scale   float64
}

// NewScaleBox wraps content at its natural scale.
func NewScaleBox(content fyneapp.CanvasObject) *ScaleBox {
	b := &ScaleBox{content: content, scale: 1}
	b.ExtendBaseWidget(b)
	return b
}

// Scale returns the current scale factor.
func (b *ScaleBox) Scale() float64 {
	return b.scale
}

// SetScale changes the scale factor and relayouts the content.
func (b *ScaleBox) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	b.scale = scale
	b.Refresh()
}

// AnimatedValue implements Animatable.
func (b *ScaleBox) AnimatedValue(property ports.AnimationProperty) float64 {
	if property == ports.PropertyScale {
		return b.scale
	}
	return 0
}

// SetAnimatedValue implements Animatable.
func (b *ScaleBox) SetAnimatedValue(property ports.AnimationProperty, value float64) {
	if property == ports.PropertyScale {
		b.SetScale(value)
	}
}

// CreateRenderer implements fyne.Widget.
func (b *ScaleBox) CreateRenderer() fyneapp.WidgetRenderer {
	return &scaleBoxRenderer{box: b}
}

type scaleBoxRenderer struct {
	box *ScaleBox
}

func (r *scaleBoxRenderer) Layout(size fyneapp.Size) {
	factor := float32(min(r.box.scale, scaleHeadroom) / scaleHeadroom)
	inner := fyneapp.NewSize(size.Width*factor, size.Height*factor)
	r.box.content.Resize(inner)
	r.box.content.Move(fyneapp.NewPos((size.Width-inner.Width)/2, (size.Height-inner.Height)/2))
}

func (r *scaleBoxRenderer) MinSize() fyneapp.Size {
	natural := r.box.content.MinSize()
	return fyneapp.NewSize(natural.Width*scaleHeadroom, natural.Height*scaleHeadroom)
}

func (r *scaleBoxRenderer) Refresh() {
	r.Layout(r.box.Size())
	r.box.content.Refresh()
}

func (r *scaleBoxRenderer) Objects() []fyneapp.CanvasObject {
	return []fyneapp.CanvasObject{r.box.content}
}

func (r *scaleBoxRenderer) Destroy() {}

var _ Animatable = (*ScaleBox)(nil)
