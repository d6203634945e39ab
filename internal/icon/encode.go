package icon

import (
	"fmt"
	"image"
	"image/png"
	"io"

	ico "github.com/sergeymakinen/go-ico"
)

// MaxICOSize is the largest bitmap edge an ICO directory entry can describe.
const MaxICOSize = 256

// pngEncoder uses a fixed compression level so output is reproducible.
var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// EncodePNG writes img as PNG. The output carries no timestamps.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := pngEncoder.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeICO writes frames as one multi-resolution ICO container, in order.
func EncodeICO(w io.Writer, frames []image.Image) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode ico: no frames")
	}
	for _, f := range frames {
		if d := f.Bounds().Size(); d.X < 1 || d.X > MaxICOSize || d.Y < 1 || d.Y > MaxICOSize {
			return fmt.Errorf("encode ico: frame %dx%d outside 1-%d", d.X, d.Y, MaxICOSize)
		}
	}
	if err := ico.EncodeAll(w, frames); err != nil {
		return fmt.Errorf("encode ico: %w", err)
	}
	return nil
}
