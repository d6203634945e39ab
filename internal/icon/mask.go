package icon

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// minSmoothRadius is the smallest radius drawn with anti-aliasing. From this
// radius up the arc clears the whole corner pixel, so corners stay fully
// transparent.
const minSmoothRadius = 4

// RoundedMask returns a size×size alpha mask of a rounded rectangle covering
// the canvas with corner radius r. Radii below minSmoothRadius are
// hard-edged.
func RoundedMask(size, r int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if r <= 0 {
		draw.Draw(mask, mask.Bounds(), image.Opaque, image.Point{}, draw.Src)
		return mask
	}
	if r < minSmoothRadius {
		hardMask(mask, size, r)
		return mask
	}

	s, rf := float32(size), float32(r)
	k := rf * kappa

	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Src
	z.MoveTo(rf, 0)
	z.LineTo(s-rf, 0)
	z.CubeTo(s-rf+k, 0, s, rf-k, s, rf)
	z.LineTo(s, s-rf)
	z.CubeTo(s, s-rf+k, s-rf+k, s, s-rf, s)
	z.LineTo(rf, s)
	z.CubeTo(rf-k, s, 0, s-rf+k, 0, s-rf)
	z.LineTo(0, rf)
	z.CubeTo(0, rf-k, rf-k, 0, rf, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mirrorQuadrant(mask, size)
	return mask
}

// mirrorQuadrant copies the top-left quadrant of mask into the other three,
// making the mask exactly symmetric on both axes.
func mirrorQuadrant(mask *image.Alpha, size int) {
	last := size - 1
	half := (size + 1) / 2
	for y := 0; y < half; y++ {
		for x := 0; x < half; x++ {
			a := mask.Pix[mask.PixOffset(x, y)]
			mask.Pix[mask.PixOffset(last-x, y)] = a
			mask.Pix[mask.PixOffset(x, last-y)] = a
			mask.Pix[mask.PixOffset(last-x, last-y)] = a
		}
	}
}

// hardMask treats each pixel as a point at its integer coordinate and keeps
// the ones within r of the nearest corner arc center.
func hardMask(mask *image.Alpha, size, r int) {
	last := size - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cx, cy := x, y
			switch {
			case x < r:
				cx = r
			case x > last-r:
				cx = last - r
			}
			switch {
			case y < r:
				cy = r
			case y > last-r:
				cy = last - r
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
}
