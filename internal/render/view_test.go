package render

import (
	"image"
	"image/color"
	"testing"
)

var (
	light = color.RGBA{220, 220, 220, 255}
	dark  = color.RGBA{192, 192, 192, 255}
)

func TestCheckerboard(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Checkerboard(img, image.Rect(2, 2, 10, 10), 4, light, dark)
	cases := map[image.Point]color.RGBA{
		{0, 0}: {},
		{2, 2}: light,
		{5, 5}: light,
		{6, 2}: dark,
		{2, 6}: dark,
		{6, 6}: light,
		{9, 9}: light,
	}
	for p, want := range cases {
		if got := img.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		content, area image.Point
		want          float64
	}{
		{image.Pt(100, 100), image.Pt(400, 300), 1},
		{image.Pt(800, 600), image.Pt(400, 600), 0.5},
		{image.Pt(800, 600), image.Pt(800, 300), 0.5},
		{image.Pt(0, 10), image.Pt(10, 10), 1},
	}
	for _, tc := range tests {
		if got := FitZoom(tc.content, tc.area); got != tc.want {
			t.Errorf("FitZoom(%v, %v) = %v, want %v", tc.content, tc.area, got, tc.want)
		}
	}
}

func TestCentered(t *testing.T) {
	got := Centered(image.Pt(100, 50), image.Rect(10, 10, 210, 110), 1)
	if want := image.Rect(60, 35, 160, 85); got != want {
		t.Fatalf("Centered = %v, want %v", got, want)
	}
}

func TestThumbnailKeepsAspect(t *testing.T) {
	src := solid(40, 20, color.NRGBA{B: 255, A: 255})
	th := Thumbnail(src, image.Pt(20, 20), light, dark)
	if th.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v", th.Bounds())
	}
	if got := th.RGBAAt(10, 10); got.B < 200 || got.R > 50 {
		t.Fatalf("centre pixel = %v, want blue", got)
	}
	if got := th.RGBAAt(10, 1); got.A != 0 {
		t.Fatalf("letterbox pixel = %v, want transparent", got)
	}
}
