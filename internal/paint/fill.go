package paint

import (
	"image"
	"image/color"
)

// DefaultFillTolerance is the bucket tool's colour-distance threshold.
const DefaultFillTolerance = 50

// ColorDistance is the 1-norm distance between two colours over R, G, B and A.
func ColorDistance(a, b color.NRGBA) int {
	return abs(int(a.R)-int(b.R)) + abs(int(a.G)-int(b.G)) +
		abs(int(a.B)-int(b.B)) + abs(int(a.A)-int(b.A))
}

// FloodFill replaces the 4-connected region around seed whose pixels are
// within tolerance of the seed colour with col. It returns the number of
// pixels changed. A seed outside img, or one already within tolerance of
// col, changes nothing.
func FloodFill(img *image.NRGBA, seed image.Point, col color.NRGBA, tolerance int) int {
	if !seed.In(img.Rect) {
		return 0
	}
	target := img.NRGBAAt(seed.X, seed.Y)
	if ColorDistance(target, col) <= tolerance {
		return 0
	}
	b := img.Rect
	w := b.Dx()
	visited := make([]bool, w*b.Dy())
	mark := func(p image.Point) bool {
		i := (p.Y-b.Min.Y)*w + (p.X - b.Min.X)
		if visited[i] {
			return false
		}
		visited[i] = true
		return true
	}
	stack := []image.Point{seed}
	mark(seed)
	changed := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		img.SetNRGBA(p.X, p.Y, col)
		changed++
		for _, n := range [4]image.Point{
			{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1},
		} {
			if !n.In(b) || !mark(n) {
				continue
			}
			if ColorDistance(img.NRGBAAt(n.X, n.Y), target) <= tolerance {
				stack = append(stack, n)
			}
		}
	}
	return changed
}
