package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Checkerboard fills rect of dst with squares of size pixels alternating
// between light and dark.
func Checkerboard(dst draw.Image, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	l, d := image.NewUniform(light), image.NewUniform(dark)
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y += size - (y-rect.Min.Y)%size {
		for x := rect.Min.X; x < rect.Max.X; x += size - (x-rect.Min.X)%size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			src := d
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 0 {
				src = l
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// FitZoom returns the largest scale at which content fits inside area,
// capped at 1 so small canvases are never magnified.
func FitZoom(content, area image.Point) float64 {
	if content.X <= 0 || content.Y <= 0 || area.X <= 0 || area.Y <= 0 {
		return 1
	}
	zx := float64(area.X) / float64(content.X)
	zy := float64(area.Y) / float64(content.Y)
	return min(zx, zy, 1)
}

// Centered returns a rectangle of size content scaled by zoom, centred in
// area.
func Centered(content image.Point, area image.Rectangle, zoom float64) image.Rectangle {
	w := int(float64(content.X) * zoom)
	h := int(float64(content.Y) * zoom)
	x0 := area.Min.X + (area.Dx()-w)/2
	y0 := area.Min.Y + (area.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Thumbnail scales src to fit within size, preserving its aspect ratio, over
// a checkerboard so transparent regions stay visible.
func Thumbnail(src image.Image, size image.Point, light, dark color.Color) *image.RGBA {
	out := image.NewRGBA(image.Rectangle{Max: size})
	sb := src.Bounds()
	zoom := min(float64(size.X)/float64(max(sb.Dx(), 1)), float64(size.Y)/float64(max(sb.Dy(), 1)))
	dst := Centered(sb.Size(), out.Bounds(), zoom)
	Checkerboard(out, dst, 4, light, dark)
	xdraw.CatmullRom.Scale(out, dst, src, sb, draw.Over, nil)
	return out
}

// Scale draws src into rect of dst using nearest-neighbour sampling so
// individual canvas pixels stay crisp at any zoom.
func Scale(dst draw.Image, rect image.Rectangle, src image.Image) {
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
}
