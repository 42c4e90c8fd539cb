package paint

import (
	"image"
	"image/color"
)

// Strokes overwrite pixels rather than blending, so a stroke painted on a
// transparent layer keeps exactly the brush colour.

// stampDisc sets a filled disc of the given diameter centred on (x, y).
func stampDisc(img *image.NRGBA, x, y, width int, col color.NRGBA) {
	if width <= 1 {
		if image.Pt(x, y).In(img.Rect) {
			img.SetNRGBA(x, y, col)
		}
		return
	}
	c := float64(width-1) / 2
	r2 := float64(width) * float64(width) / 4
	half := (width - 1) / 2
	for j := 0; j < width; j++ {
		for i := 0; i < width; i++ {
			dx := float64(i) - c
			dy := float64(j) - c
			if dx*dx+dy*dy > r2 {
				continue
			}
			px := x + i - half
			py := y + j - half
			if image.Pt(px, py).In(img.Rect) {
				img.SetNRGBA(px, py, col)
			}
		}
	}
}

// StrokeLine draws a segment from p0 to p1 with round caps.
func StrokeLine(img *image.NRGBA, p0, p1 image.Point, col color.NRGBA, width int) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		stampDisc(img, x0, y0, width, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Normalize returns the inclusive box spanned by two corner points.
func Normalize(a, b image.Point) image.Rectangle {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	return r
}

// StrokeRect outlines the inclusive box r with bands of the given width
// drawn inward.
func StrokeRect(img *image.NRGBA, r image.Rectangle, col color.NRGBA, width int) {
	if width < 1 {
		width = 1
	}
	r = r.Canon()
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			edge := x < r.Min.X+width || x > r.Max.X-width ||
				y < r.Min.Y+width || y > r.Max.Y-width
			if edge && image.Pt(x, y).In(img.Rect) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// StrokeEllipse outlines the ellipse inscribed in the inclusive box r. The
// ring is width pixels thick, drawn inward from the box.
func StrokeEllipse(img *image.NRGBA, r image.Rectangle, col color.NRGBA, width int) {
	if width < 1 {
		width = 1
	}
	r = r.Canon()
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	orx := float64(r.Max.X-r.Min.X)/2 + 0.5
	ory := float64(r.Max.Y-r.Min.Y)/2 + 0.5
	irx := orx - float64(width)
	iry := ory - float64(width)
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			fx := float64(x) - cx
			fy := float64(y) - cy
			if (fx*fx)/(orx*orx)+(fy*fy)/(ory*ory) > 1 {
				continue
			}
			if irx > 0 && iry > 0 && (fx*fx)/(irx*irx)+(fy*fy)/(iry*iry) < 1 {
				continue
			}
			if image.Pt(x, y).In(img.Rect) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
