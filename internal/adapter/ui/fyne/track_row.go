package fyne

import (
	"fmt"
	"image/color"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/gospin/internal/adapter/artwork"
	"github.com/tejashwikalptaru/gospin/internal/domain"
	"github.com/tejashwikalptaru/gospin/internal/ports"
)

// rowThumbnailSize is the edge of the cover shown on a row.
const rowThumbnailSize = 40

// TrackRow is one clickable playlist entry: cover, name, author and a status sprite
// over a highlight background.
type TrackRow struct {
	widget.BaseWidget

	target ports.AnimationTarget
	loader *artwork.Loader

	background *canvas.Rectangle
	thumbnail  *canvas.Image
	name       *widget.Label
	author     *widget.Label
	status     *widget.Icon
	box        *ScaleBox

	icon        domain.Icon
	highlight   float64
	onActivated func()
}

// NewTrackRow creates an empty row animated through target.
func NewTrackRow(target ports.AnimationTarget, loader *artwork.Loader) *TrackRow {
	r := &TrackRow{
		target:     target,
		loader:     loader,
		background: canvas.NewRectangle(color.Transparent),
		thumbnail:  canvas.NewImageFromImage(nil),
		name:       widget.NewLabel(""),
		author:     widget.NewLabel(""),
		status:     widget.NewIcon(iconResource(domain.IconRowIdle)),
		icon:       domain.IconRowIdle,
	}
	r.background.CornerRadius = theme.InputRadiusSize()
	r.thumbnail.FillMode = canvas.ImageFillContain
	r.thumbnail.SetMinSize(fyneapp.NewSquareSize(rowThumbnailSize))
	r.name.TextStyle = fyneapp.TextStyle{Bold: true}
	r.name.Truncation = fyneapp.TextTruncateEllipsis
	r.author.Truncation = fyneapp.TextTruncateEllipsis

	text := container.NewVBox(r.name, r.author)
	r.box = NewScaleBox(container.NewBorder(nil, nil, r.thumbnail, r.status, text))

	r.ExtendBaseWidget(r)
	return r
}

// Bind implements ports.TrackRow.
func (r *TrackRow) Bind(track domain.Track) {
	r.name.SetText(track.Name)
	r.author.SetText(track.Author)
	if r.loader != nil {
		r.thumbnail.Image = r.loader.Load(track.Thumbnail)
		r.thumbnail.Refresh()
	}
}

// SetIcon implements ports.TrackRow.
func (r *TrackRow) SetIcon(icon domain.Icon) {
	r.icon = icon
	r.status.SetResource(iconResource(icon))
}

// Icon returns the status sprite of the row.
func (r *TrackRow) Icon() domain.Icon {
	return r.icon
}

// SetOnActivated implements ports.TrackRow.
func (r *TrackRow) SetOnActivated(fn func()) {
	r.onActivated = fn
}

// AnimationTarget implements ports.TrackRow.
func (r *TrackRow) AnimationTarget() ports.AnimationTarget {
	return r.target
}

// Name returns the displayed track name.
func (r *TrackRow) Name() string {
	return r.name.Text
}

// Author returns the displayed author.
func (r *TrackRow) Author() string {
	return r.author.Text
}

// Scale returns the current scale of the row content.
func (r *TrackRow) Scale() float64 {
	return r.box.Scale()
}

// Highlight returns the blend between the normal (0) and selected (1) background.
func (r *TrackRow) Highlight() float64 {
	return r.highlight
}

// Tapped implements fyne.Tappable.
func (r *TrackRow) Tapped(*fyneapp.PointEvent) {
	if r.onActivated != nil {
		r.onActivated()
	}
}

// AnimatedValue implements Animatable.
func (r *TrackRow) AnimatedValue(property ports.AnimationProperty) float64 {
	switch property {
	case ports.PropertyScale:
		return r.box.Scale()
	case ports.PropertyHighlight:
		return r.highlight
	default:
		return 0
	}
}

// SetAnimatedValue implements Animatable.
func (r *TrackRow) SetAnimatedValue(property ports.AnimationProperty, value float64) {
	switch property {
	case ports.PropertyScale:
		r.box.SetScale(value)
	case ports.PropertyHighlight:
		r.highlight = min(max(value, 0), 1)
		r.background.FillColor = blend(theme.Color(theme.ColorNameSelection), r.highlight)
		r.background.Refresh()
	}
}

// CreateRenderer implements fyne.Widget.
func (r *TrackRow) CreateRenderer() fyneapp.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(r.background, r.box))
}

// blend scales the opacity of c by amount.
func blend(c color.Color, amount float64) color.Color {
	red, green, blue, alpha := c.RGBA()
	return color.NRGBA64{
		R: uint16(red),
		G: uint16(green),
		B: uint16(blue),
		A: uint16(float64(alpha) * amount),
	}
}

// RowList is the scrollable playlist. It creates the rows and registers them
// with the animator, under the row target and its background target.
type RowList struct {
	loader   *artwork.Loader
	animator *Animator

	list   *fyneapp.Container
	scroll *container.Scroll
	rows   []*TrackRow
}

// NewRowList creates an empty list.
func NewRowList(loader *artwork.Loader, animator *Animator) *RowList {
	l := &RowList{
		loader:   loader,
		animator: animator,
		list:     container.NewVBox(),
	}
	l.scroll = container.NewVScroll(l.list)
	return l
}

// Object returns the canvas object to place in a layout.
func (l *RowList) Object() fyneapp.CanvasObject {
	return l.scroll
}

// Rows returns the rows created by the last NewRows call.
func (l *RowList) Rows() []*TrackRow {
	return l.rows
}

// NewRows implements ports.TrackRowFactory.
func (l *RowList) NewRows(count int) []ports.TrackRow {
	for _, row := range l.rows {
		l.animator.Unregister(row.target)
		l.animator.Unregister(row.target.Background())
	}

	l.rows = make([]*TrackRow, count)
	objects := make([]fyneapp.CanvasObject, count)
	result := make([]ports.TrackRow, count)

	for i := range count {
		row := NewTrackRow(ports.AnimationTarget(fmt.Sprintf("row-%d", i)), l.loader)
		l.animator.Register(row.target, row)
		l.animator.Register(row.target.Background(), row)

		l.rows[i] = row
		objects[i] = row
		result[i] = row
	}

	l.list.Objects = objects
	l.list.Refresh()
	return result
}

var (
	_ ports.TrackRow        = (*TrackRow)(nil)
	_ ports.TrackRowFactory = (*RowList)(nil)
	_ fyneapp.Tappable      = (*TrackRow)(nil)
	_ Animatable            = (*TrackRow)(nil)
)
