package paint

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	// White is the opaque fill used for the background layer and the eraser.
	White = color.NRGBA{255, 255, 255, 255}
	// Transparent is the fill used for every layer added after the background.
	Transparent = color.NRGBA{}
)

// Layer is one independently editable RGBA raster within a stacked image.
type Layer struct {
	Name    string
	Image   *image.NRGBA
	Visible bool
	Locked  bool
}

// NewLayer allocates a visible, unlocked layer of the given size filled with col.
func NewLayer(name string, width, height int, col color.NRGBA) *Layer {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if col != Transparent {
		draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	}
	return &Layer{Name: name, Image: img, Visible: true}
}

// Clone returns a deep copy of the layer. The pixel buffer is never shared.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	return &Layer{
		Name:    l.Name,
		Image:   cloneNRGBA(l.Image),
		Visible: l.Visible,
		Locked:  l.Locked,
	}
}

// Drawable reports whether drawing tools may mutate this layer.
func (l *Layer) Drawable() bool {
	return l != nil && l.Visible && !l.Locked
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := &image.NRGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(out.Pix, src.Pix)
	return out
}

// CropExtend pastes src at the origin of a new transparent width x height
// buffer, truncating pixels beyond the new bounds.
func CropExtend(src image.Image, width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := src.Bounds()
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}
