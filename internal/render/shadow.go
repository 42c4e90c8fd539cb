// Package render holds the raster helpers the widget uses to present a
// document: drop shadows, checkerboards, fitting and thumbnails.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports where the top-left corner of the source landed inside
	// Image. Callers use it to keep the content at a stable screen position.
	Offset image.Point
}

// DefaultShadowOptions returns the shadow used under the frozen preview.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 0.4,
	}
}

// ApplyShadow composites img over a blurred copy of its alpha. The result
// always has a zero origin.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	src := img.Bounds()
	if src.Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: toRGBA(img)}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	total := src.Union(shadow)
	shift := src.Min.Sub(total.Min)

	mask := image.NewAlpha(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			mask.SetAlpha(x-padded.Min.X, y-padded.Min.Y, color.Alpha{A: uint8(a >> 8)})
		}
	}
	blurred := blur.Box(mask, float64(radius))

	dst := image.NewRGBA(total.Sub(total.Min))
	shade := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, blurred.Bounds().Add(shadow.Min.Sub(total.Min)), shade, image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	draw.Draw(dst, src.Sub(total.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: shift}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
