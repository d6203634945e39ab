// Package icon renders the brand glyph onto square canvases and encodes them
// as PNG or multi-resolution ICO.
package icon

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Style selects how the canvas background is painted.
type Style int

const (
	// Solid fills the whole canvas.
	Solid Style = iota
	// Rounded fills a rounded rectangle and leaves the corners transparent.
	Rounded
)

// ParseStyle maps a config style name to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "solid":
		return Solid, nil
	case "rounded":
		return Rounded, nil
	}
	return Solid, fmt.Errorf("unknown icon style %q", s)
}

// String returns the config style name.
func (s Style) String() string {
	if s == Rounded {
		return "rounded"
	}
	return "solid"
}

// Spec describes one canvas.
type Spec struct {
	Size       int
	Glyph      string
	GlyphColor color.NRGBA
	Background color.NRGBA
	Style      Style
	// CornerRadius applies to Rounded. Zero or less means Size/8.
	CornerRadius int
}

// Radius returns the effective corner radius, clamped to Size/2.
func (s Spec) Radius() int {
	r := s.CornerRadius
	if r <= 0 {
		r = s.Size / 8
	}
	return min(r, s.Size/2)
}

// Placement records where the glyph was drawn.
type Placement struct {
	// Origin is the baseline dot passed to the drawer.
	Origin image.Point
	// Box is the measured glyph bounding box in canvas coordinates.
	Box image.Rectangle
}

// FontPoints converts a size ratio into a whole point size.
func FontPoints(size int, ratio float64) float64 {
	return math.Round(float64(size) * ratio)
}

// Render draws the background and then the glyph, centered by its measured
// bounding box rather than the face's ascent and descent.
func Render(spec Spec, face font.Face) (*image.NRGBA, Placement, error) {
	if spec.Size <= 0 {
		return nil, Placement{}, fmt.Errorf("invalid canvas size %d", spec.Size)
	}
	if face == nil {
		return nil, Placement{}, fmt.Errorf("nil font face")
	}
	size := spec.Size
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	bg := image.NewUniform(spec.Background)

	switch spec.Style {
	case Rounded:
		if r := spec.Radius(); r > 0 {
			draw.DrawMask(img, img.Bounds(), bg, image.Point{}, RoundedMask(size, r), image.Point{}, draw.Src)
		} else {
			draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)
		}
	default:
		draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)
	}

	// BoundString gives the actual pixel bounds of the rendered glyphs.
	bounds, _ := font.BoundString(face, spec.Glyph)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	originX := (size-glyphW)/2 - bounds.Min.X.Floor()
	originY := (size-glyphH)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(spec.GlyphColor),
		Face: face,
		Dot:  fixed.P(originX, originY),
	}
	d.DrawString(spec.Glyph)

	p := Placement{
		Origin: image.Pt(originX, originY),
		Box: image.Rect(
			originX+bounds.Min.X.Floor(), originY+bounds.Min.Y.Floor(),
			originX+bounds.Max.X.Ceil(), originY+bounds.Max.Y.Ceil(),
		),
	}
	return img, p, nil
}
