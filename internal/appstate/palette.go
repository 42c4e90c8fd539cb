package appstate

import (
	"fmt"
	"image/color"
	"slices"
	"sort"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/paintframe/internal/paint"
)

// PaletteColor is a named swatch.
type PaletteColor struct {
	Name  string
	Color color.NRGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"Black", color.NRGBA{0, 0, 0, 255}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{"Red", color.NRGBA{255, 0, 0, 255}},
		{"Lime", color.NRGBA{0, 255, 0, 255}},
		{"Blue", color.NRGBA{0, 0, 255, 255}},
		{"Yellow", color.NRGBA{255, 255, 0, 255}},
		{"Cyan", color.NRGBA{0, 255, 255, 255}},
		{"Magenta", color.NRGBA{255, 0, 255, 255}},
		{"Maroon", color.NRGBA{128, 0, 0, 255}},
		{"Green", color.NRGBA{0, 128, 0, 255}},
		{"Navy", color.NRGBA{0, 0, 128, 255}},
		{"Olive", color.NRGBA{128, 128, 0, 255}},
		{"Teal", color.NRGBA{0, 128, 128, 255}},
		{"Purple", color.NRGBA{128, 0, 128, 255}},
		{"Silver", color.NRGBA{192, 192, 192, 255}},
		{"Gray", color.NRGBA{128, 128, 128, 255}},
	}

	widthsMu sync.RWMutex
	widths   = []int{1, 2, 4, 8, 12, 20}
)

// PaletteColors returns a copy of the swatches.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return slices.Clone(palette)
}

// EnsurePaletteColor makes sure col is present in the palette and returns
// its index. Unnamed colours are named after a matching SVG colour name, or
// their hex value.
func EnsurePaletteColor(col color.NRGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	if name == "" {
		name = colorName(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

func colorName(col color.NRGBA) string {
	if col.A == 255 {
		want := color.RGBA{col.R, col.G, col.B, 255}
		names := make([]string, 0, len(colornames.Map))
		for n := range colornames.Map {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if colornames.Map[n] == want {
				return n
			}
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
}

// WidthOptions returns a copy of the available brush widths.
func WidthOptions() []int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return slices.Clone(widths)
}

// EnsureWidth makes sure width is included in the options and returns its
// index.
func EnsureWidth(width int) int {
	width = min(max(width, paint.MinBrushWidth), paint.MaxBrushWidth)
	widthsMu.Lock()
	defer widthsMu.Unlock()
	if idx := slices.Index(widths, width); idx >= 0 {
		return idx
	}
	widths = append(widths, width)
	sort.Ints(widths)
	return slices.Index(widths, width)
}

func paletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

func paletteAt(idx int) PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if idx < 0 || idx >= len(palette) {
		return palette[0]
	}
	return palette[idx]
}

func widthsLen() int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return len(widths)
}

func widthAt(idx int) int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	if idx < 0 || idx >= len(widths) {
		return paint.DefaultBrushWidth
	}
	return widths[idx]
}
