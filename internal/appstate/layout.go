package appstate

import (
	"image"
	"math"

	"golang.org/x/image/font"

	"github.com/example/paintframe/internal/render"
)

const (
	headerHeight  = 24
	statusHeight  = 24
	toolbarWidth  = 64
	panelWidth    = 184
	rowHeight     = 24
	buttonHeight  = 22
	swatchSize    = 16
	swatchStep    = 18
	widthRowH     = 16
	canvasMargin  = 12
	panelFooterH  = 26
	shortcutGap   = 8
	shortcutInset = 4
)

// HitKind names the region of the widget under a point.
type HitKind int

const (
	HitNone HitKind = iota
	HitTool
	HitSwatch
	HitWidth
	HitLayer
	HitLayerButton
	HitShortcut
	HitCanvas
	HitWork
)

// Hit is the result of hit-testing a Layout. Index is the tool, swatch,
// width, layer button or shortcut index depending on Kind.
type Hit struct {
	Kind  HitKind
	Index int
}

// Layout is the screen geometry of the widget for one window size. It is
// pure data so hit-testing can be checked without a window.
type Layout struct {
	Window  image.Rectangle
	Header  image.Rectangle
	Toolbar image.Rectangle
	Panel   image.Rectangle
	Rows    image.Rectangle
	Status  image.Rectangle
	Work    image.Rectangle
	Canvas  image.Rectangle
	Zoom    float64

	Tools        []image.Rectangle
	Swatches     []image.Rectangle
	Widths       []image.Rectangle
	LayerButtons []image.Rectangle
	Shortcuts    []image.Rectangle
}

// Editing reports whether the layout carries chrome.
func (l Layout) Editing() bool { return !l.Toolbar.Empty() }

// ComputeLayout lays out a window of size win showing a canvas of size
// canvas. Without chrome the canvas is centred in the whole window.
func ComputeLayout(win, canvas image.Point, editing bool) Layout {
	l := Layout{Window: image.Rectangle{Max: win}}
	if !editing {
		l.Work = l.Window
		l.placeCanvas(canvas)
		return l
	}
	l.Header = image.Rect(0, 0, win.X, headerHeight)
	l.Status = image.Rect(0, win.Y-statusHeight, win.X, win.Y)
	l.Toolbar = image.Rect(0, headerHeight, toolbarWidth, l.Status.Min.Y)
	l.Panel = image.Rect(win.X-panelWidth, headerHeight, win.X, l.Status.Min.Y)
	l.Rows = image.Rect(l.Panel.Min.X, l.Panel.Min.Y, l.Panel.Max.X, l.Panel.Max.Y-panelFooterH)
	l.Work = image.Rect(l.Toolbar.Max.X, headerHeight, l.Panel.Min.X, l.Status.Min.Y)
	l.placeCanvas(canvas)

	y := l.Toolbar.Min.Y
	for range toolLabels {
		l.Tools = append(l.Tools, image.Rect(0, y, toolbarWidth, y+buttonHeight+2))
		y += buttonHeight + 2
	}
	y += 4
	x := 4
	for range paletteLen() {
		l.Swatches = append(l.Swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStep
		if x+swatchSize > toolbarWidth {
			x = 4
			y += swatchStep
		}
	}
	if x != 4 {
		y += swatchStep
	}
	y += 4
	for range widthsLen() {
		l.Widths = append(l.Widths, image.Rect(0, y, toolbarWidth, y+widthRowH))
		y += widthRowH
	}

	bw := panelWidth / len(layerButtonLabels)
	for i := range layerButtonLabels {
		x0 := l.Panel.Min.X + i*bw
		l.LayerButtons = append(l.LayerButtons, image.Rect(x0+2, l.Rows.Max.Y+2, x0+bw-2, l.Panel.Max.Y-2))
	}

	meas := &font.Drawer{Face: basicFace}
	x = shortcutInset
	for _, sc := range shortcuts {
		w := meas.MeasureString(sc.label).Ceil()
		r := image.Rect(x, l.Status.Min.Y+3, x+w+4, l.Status.Max.Y-3)
		if r.Max.X > win.X {
			break
		}
		l.Shortcuts = append(l.Shortcuts, r)
		x = r.Max.X + shortcutGap
	}
	return l
}

func (l *Layout) placeCanvas(canvas image.Point) {
	area := l.Work.Inset(canvasMargin)
	if area.Empty() {
		area = l.Work
	}
	l.Zoom = render.FitZoom(canvas, area.Size())
	l.Canvas = render.Centered(canvas, area, l.Zoom)
}

// ToCanvas converts a window point to canvas pixel coordinates. Points
// outside the canvas map outside the canvas bounds.
func (l Layout) ToCanvas(p image.Point) image.Point {
	if l.Zoom <= 0 {
		return p.Sub(l.Canvas.Min)
	}
	d := p.Sub(l.Canvas.Min)
	return image.Pt(floorDiv(d.X, l.Zoom), floorDiv(d.Y, l.Zoom))
}

func floorDiv(v int, zoom float64) int {
	return int(math.Floor(float64(v) / zoom))
}

// HitTest reports what lies under p.
func (l Layout) HitTest(p image.Point) Hit {
	if !p.In(l.Window) {
		return Hit{Kind: HitNone}
	}
	if p.In(l.Canvas) {
		return Hit{Kind: HitCanvas}
	}
	if find := indexOf(l.Tools, p); find >= 0 {
		return Hit{Kind: HitTool, Index: find}
	}
	if find := indexOf(l.Swatches, p); find >= 0 {
		return Hit{Kind: HitSwatch, Index: find}
	}
	if find := indexOf(l.Widths, p); find >= 0 {
		return Hit{Kind: HitWidth, Index: find}
	}
	if p.In(l.Rows) {
		return Hit{Kind: HitLayer}
	}
	if find := indexOf(l.LayerButtons, p); find >= 0 {
		return Hit{Kind: HitLayerButton, Index: find}
	}
	if find := indexOf(l.Shortcuts, p); find >= 0 {
		return Hit{Kind: HitShortcut, Index: find}
	}
	if p.In(l.Work) {
		return Hit{Kind: HitWork}
	}
	return Hit{Kind: HitNone}
}

func indexOf(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
