package artwork

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// LoopGlyph draws the repeat arrow used by the loop toggle, tilted by degrees.
// Inactive glyphs are drawn at a third of the colour's opacity.
func LoopGlyph(size int, degrees float64, active bool, c color.Color) image.Image {
	s := float64(size)
	r := s * 0.32

	if !active {
		red, green, blue, alpha := c.RGBA()
		c = color.NRGBA64{R: uint16(red), G: uint16(green), B: uint16(blue), A: uint16(alpha / 3)}
	}

	dc := gg.NewContext(size, size)
	dc.RotateAbout(gg.Radians(degrees), s/2, s/2)
	dc.SetColor(c)
	dc.SetLineWidth(s * 0.1)
	dc.SetLineCapRound()
	dc.DrawArc(s/2, s/2, r, gg.Radians(40), gg.Radians(320))
	dc.Stroke()

	// Arrow head at the end of the arc, pointing along the direction of travel.
	tipX, tipY := s/2+r, s/2
	head := s * 0.16
	dc.MoveTo(tipX-head, tipY-head*0.4)
	dc.LineTo(tipX+head, tipY-head*0.4)
	dc.LineTo(tipX, tipY+head*0.8)
	dc.ClosePath()
	dc.Fill()

	return dc.Image()
}
