package appstate

import (
	"image"
	"testing"
)

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestComputeLayoutEditing(t *testing.T) {
	l := ComputeLayout(image.Pt(1000, 700), image.Pt(400, 300), true)
	if !l.Editing() {
		t.Fatal("expected chrome")
	}
	if l.Zoom != 1 {
		t.Fatalf("zoom = %v, want 1", l.Zoom)
	}
	if want := image.Rect(240, 200, 640, 500); l.Canvas != want {
		t.Fatalf("canvas = %v, want %v", l.Canvas, want)
	}
	if !l.Canvas.In(l.Work) {
		t.Fatalf("canvas %v escapes work area %v", l.Canvas, l.Work)
	}
	if len(l.Tools) != len(toolLabels) {
		t.Fatalf("got %d tool buttons, want %d", len(l.Tools), len(toolLabels))
	}
	if len(l.Swatches) != paletteLen() || len(l.Widths) != widthsLen() {
		t.Fatalf("got %d swatches and %d widths", len(l.Swatches), len(l.Widths))
	}
	if len(l.Shortcuts) == 0 {
		t.Fatal("expected shortcut buttons")
	}
	for _, r := range l.Shortcuts {
		if !r.In(l.Status) {
			t.Fatalf("shortcut %v outside status bar %v", r, l.Status)
		}
	}
	for _, r := range l.LayerButtons {
		if !r.In(l.Panel) || r.Overlaps(l.Rows) {
			t.Fatalf("layer button %v misplaced", r)
		}
	}
}

func TestComputeLayoutPreview(t *testing.T) {
	l := ComputeLayout(image.Pt(200, 100), image.Pt(400, 300), false)
	if l.Editing() {
		t.Fatal("preview layout has chrome")
	}
	if len(l.Tools) != 0 || len(l.Shortcuts) != 0 {
		t.Fatal("preview layout has buttons")
	}
	if !l.Canvas.In(l.Window) {
		t.Fatalf("canvas %v outside window", l.Canvas)
	}
	if l.Zoom >= 1 {
		t.Fatalf("zoom = %v, want shrink to fit", l.Zoom)
	}
}

func TestHitTest(t *testing.T) {
	l := ComputeLayout(image.Pt(1000, 700), image.Pt(400, 300), true)
	tests := []struct {
		name string
		p    image.Point
		want Hit
	}{
		{"canvas", center(l.Canvas), Hit{Kind: HitCanvas}},
		{"tool", center(l.Tools[2]), Hit{Kind: HitTool, Index: 2}},
		{"swatch", center(l.Swatches[3]), Hit{Kind: HitSwatch, Index: 3}},
		{"width", center(l.Widths[1]), Hit{Kind: HitWidth, Index: 1}},
		{"layers", center(l.Rows), Hit{Kind: HitLayer}},
		{"layer button", center(l.LayerButtons[layerDelete]), Hit{Kind: HitLayerButton, Index: layerDelete}},
		{"shortcut", center(l.Shortcuts[0]), Hit{Kind: HitShortcut, Index: 0}},
		{"work", l.Work.Min.Add(image.Pt(2, 2)), Hit{Kind: HitWork}},
		{"outside", image.Pt(-1, 5), Hit{Kind: HitNone}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.HitTest(tc.p); got != tc.want {
				t.Fatalf("HitTest(%v) = %+v, want %+v", tc.p, got, tc.want)
			}
		})
	}
}

func TestToCanvas(t *testing.T) {
	l := ComputeLayout(image.Pt(1000, 700), image.Pt(1456, 1256), true)
	if l.Zoom != 0.5 {
		t.Fatalf("zoom = %v, want 0.5", l.Zoom)
	}
	if got := l.ToCanvas(l.Canvas.Min); got != (image.Point{}) {
		t.Fatalf("ToCanvas(min) = %v", got)
	}
	if got := l.ToCanvas(l.Canvas.Min.Add(image.Pt(10, 7))); got != image.Pt(20, 14) {
		t.Fatalf("ToCanvas = %v, want (20,14)", got)
	}
	if got := l.ToCanvas(l.Canvas.Min.Sub(image.Pt(1, 1))); got.X >= 0 || got.Y >= 0 {
		t.Fatalf("point left of the canvas mapped inside: %v", got)
	}
}
