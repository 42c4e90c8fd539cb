package paint

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func drawDisc(img *image.NRGBA, cx, cy, r int, col color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func TestCompositeRedCircle(t *testing.T) {
	s := mustStore(t, 100, 100)
	s.AddLayer("Sketch", Transparent)
	drawDisc(s.Active().Image, 50, 50, 20, red)

	out := Composite(s)
	if !out.Bounds().Eq(image.Rect(0, 0, 100, 100)) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(50, 50); got != red {
		t.Errorf("inside = %v, want red", got)
	}
	if got := out.NRGBAAt(5, 5); got != White {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestCompositeHiddenEqualsRemoved(t *testing.T) {
	s := mustStore(t, 16, 16)
	s.AddLayer("middle", Transparent)
	drawDisc(s.Active().Image, 8, 8, 4, color.NRGBA{G: 200, A: 128})
	s.AddLayer("top", Transparent)
	drawDisc(s.Active().Image, 4, 4, 3, color.NRGBA{B: 255, A: 255})

	if err := s.SetVisible(1, false); err != nil {
		t.Fatal(err)
	}
	hidden := Composite(s)

	if err := s.Select(1); err != nil {
		t.Fatal(err)
	}
	s.DeleteActiveLayer()
	removed := Composite(s)

	if !bytes.Equal(hidden.Pix, removed.Pix) {
		t.Fatal("hiding a layer differs from removing it")
	}
}

func TestCompositeIncludesLocked(t *testing.T) {
	s := mustStore(t, 4, 4)
	s.AddLayer("ink", red)
	s.Active().Locked = true
	if got := Composite(s).NRGBAAt(0, 0); got != red {
		t.Fatalf("locked layer missing from composite: %v", got)
	}
}

func TestSampleAtClamps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(2, 2, White)
	if got := SampleAt(img, -10, -1); got != red {
		t.Errorf("top-left clamp = %v", got)
	}
	if got := SampleAt(img, 99, 5); got != White {
		t.Errorf("bottom-right clamp = %v", got)
	}
}
