package paint

import (
	"image"
	"image/color"
	"image/draw"
)

// Composite flattens the visible layers of s, bottom to top, over an opaque
// white background. Locked layers are composited; hidden layers are not.
func Composite(s *Store) *image.NRGBA {
	out := image.NewRGBA(s.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(White), image.Point{}, draw.Src)
	for _, l := range s.layers {
		if !l.Visible {
			continue
		}
		draw.Draw(out, out.Bounds(), l.Image, image.Point{}, draw.Over)
	}
	// Every pixel is opaque, so the premultiplied and straight encodings of
	// the buffer are identical.
	return &image.NRGBA{Pix: out.Pix, Stride: out.Stride, Rect: out.Rect}
}

// SampleAt returns the colour of img at (x, y), clamping the point to the
// image bounds.
func SampleAt(img *image.NRGBA, x, y int) color.NRGBA {
	b := img.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	}
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	return img.NRGBAAt(x, y)
}
