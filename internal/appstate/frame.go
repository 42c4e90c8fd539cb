package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/render"
	"github.com/example/paintframe/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

type layerView struct {
	name    string
	visible bool
	locked  bool
	thumb   *image.RGBA
}

// paintState is everything drawFrame needs. It shares no mutable state with
// the editor, so frames can be rendered off the event goroutine.
type paintState struct {
	layout     Layout
	theme      *theme.Theme
	title      string
	composite  *image.NRGBA
	shape      paint.Shape
	hasShape   bool
	tool       paint.Tool
	colorIdx   int
	widthIdx   int
	layers     []layerView
	rows       []paint.PanelRow
	active     int
	dropY      int
	renaming   int
	renameText string
	hover      Hit
	message    string
	messageErr bool
	until      time.Time
	busy       bool
	decorated  *image.RGBA
	decorShift image.Point
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(st.layout.Window.Size())
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	if !renderFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame draws st into dst. It returns false when ctx was cancelled
// part way through.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.theme
	l := st.layout
	fill(dst, dst.Bounds(), th.Background)

	if !l.Editing() {
		drawPreview(dst, st)
		return ctx.Err() == nil
	}

	render.Scale(dst, l.Canvas, st.composite)
	if st.hasShape {
		overlay := image.NewNRGBA(st.composite.Bounds())
		st.shape.Draw(overlay)
		render.Scale(dst, l.Canvas, overlay)
	}
	drawRect(dst, l.Canvas.Inset(-1), th.CanvasBorder, 1)
	if ctx.Err() != nil {
		return false
	}

	drawHeader(dst, st)
	drawToolbar(dst, st)
	if ctx.Err() != nil {
		return false
	}
	drawPanel(dst, st)
	drawStatus(dst, st)
	if ctx.Err() != nil {
		return false
	}
	drawMessage(dst, st)
	return ctx.Err() == nil
}

func drawPreview(dst *image.RGBA, st paintState) {
	l := st.layout
	if st.decorated == nil {
		render.Scale(dst, l.Canvas, st.composite)
		return
	}
	off := image.Pt(int(float64(st.decorShift.X)*l.Zoom), int(float64(st.decorShift.Y)*l.Zoom))
	size := st.decorated.Bounds().Size()
	r := image.Rectangle{Max: image.Pt(int(float64(size.X)*l.Zoom), int(float64(size.Y)*l.Zoom))}
	render.Scale(dst, r.Add(l.Canvas.Min.Sub(off)), st.decorated)
}

func drawHeader(dst *image.RGBA, st paintState) {
	th := st.theme
	fill(dst, st.layout.Header, th.ToolbarBackground)
	title := "PaintFrame"
	if st.title != "" {
		title += ": " + filepath.Base(st.title)
	}
	if st.busy {
		title += " (saving...)"
	}
	drawLabel(dst, 4, 16, title, th.Foreground)
	zoom := fmt.Sprintf("%s %dpx %.0f%%", st.tool, widthAt(st.widthIdx), st.layout.Zoom*100)
	meas := &font.Drawer{Face: basicFace}
	drawLabel(dst, st.layout.Header.Max.X-meas.MeasureString(zoom).Ceil()-6, 16, zoom, th.Foreground)
}

func drawToolbar(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	fill(dst, l.Toolbar, th.ToolbarBackground)
	for i, r := range l.Tools {
		hovered := st.hover.Kind == HitTool && st.hover.Index == i
		drawButton(dst, r, toolLabels[i], buttonState(paint.Tools()[i] == st.tool, hovered), th)
	}
	for i, r := range l.Swatches {
		fill(dst, r, paletteAt(i).Color)
		if st.hover.Kind == HitSwatch && st.hover.Index == i {
			draw.Draw(dst, r, image.NewUniform(color.RGBA{255, 255, 255, 80}), image.Point{}, draw.Over)
		}
		if i == st.colorIdx {
			drawRect(dst, r.Inset(-1), th.ButtonBorder, 2)
		}
	}
	brush := paletteAt(st.colorIdx).Color
	for i, r := range l.Widths {
		hovered := st.hover.Kind == HitWidth && st.hover.Index == i
		bg := th.ButtonBackground
		switch buttonState(i == st.widthIdx, hovered) {
		case StatePressed:
			bg = th.ButtonBackgroundPress
		case StateHover:
			bg = th.ButtonBackgroundHover
		}
		fill(dst, r, bg)
		w := widthAt(i)
		drawLabel(dst, r.Min.X+3, r.Min.Y+12, fmt.Sprint(w), th.ButtonText)
		h := min(w, r.Dy()-4)
		mid := r.Min.Y + r.Dy()/2
		fill(dst, image.Rect(r.Min.X+24, mid-h/2, r.Max.X-4, mid-h/2+max(h, 1)), brush)
	}
}

func drawPanel(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	fill(dst, l.Panel, th.PanelBackground)
	drawRect(dst, l.Panel, th.ButtonBorder, 1)
	for _, row := range st.rows {
		lv := st.layers[row.Layer]
		if row.Layer == st.active {
			fill(dst, row.Bounds, th.PanelActive)
		}
		drawRect(dst, row.Eye.Inset(4), th.PanelText, 1)
		if lv.visible {
			fill(dst, row.Eye.Inset(7), th.PanelText)
		}
		drawRect(dst, row.Lock.Inset(4), th.PanelText, 1)
		if lv.locked {
			fill(dst, row.Lock.Inset(4), th.PanelText)
		}
		x := row.Name.Min.X + 2
		if lv.thumb != nil {
			tr := lv.thumb.Bounds().Add(image.Pt(x, row.Name.Min.Y+2))
			draw.Draw(dst, tr, lv.thumb, image.Point{}, draw.Over)
			drawRect(dst, tr.Inset(-1), th.ButtonBorder, 1)
			x = tr.Max.X + 5
		}
		text := lv.name
		col := th.PanelText
		if !lv.visible {
			col = th.PanelHidden
		}
		if st.renaming == row.Layer {
			text = st.renameText + "|"
			col = th.Foreground
		}
		drawLabel(dst, x, row.Bounds.Min.Y+16, clipText(text, row.Name.Max.X-x), col)
		fill(dst, image.Rect(row.Bounds.Min.X, row.Bounds.Max.Y-1, row.Bounds.Max.X, row.Bounds.Max.Y), th.ButtonBackground)
	}
	if st.dropY >= 0 {
		fill(dst, image.Rect(l.Rows.Min.X+2, st.dropY-1, l.Rows.Max.X-2, st.dropY+1), th.DropIndicator)
	}
	for i, r := range l.LayerButtons {
		hovered := st.hover.Kind == HitLayerButton && st.hover.Index == i
		drawButton(dst, r, layerButtonLabels[i], buttonState(false, hovered), th)
	}
}

func clipText(s string, width int) string {
	meas := &font.Drawer{Face: basicFace}
	for len(s) > 0 && meas.MeasureString(s).Ceil() > width {
		s = s[:len(s)-1]
	}
	return s
}

func drawStatus(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	fill(dst, l.Status, th.StatusBackground)
	for i, r := range l.Shortcuts {
		hovered := st.hover.Kind == HitShortcut && st.hover.Index == i
		drawButton(dst, r, shortcuts[i].label, buttonState(false, hovered), th)
	}
}

func drawMessage(dst *image.RGBA, st paintState) {
	if st.message == "" || !time.Now().Before(st.until) {
		return
	}
	th := st.theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: messageFace}
	if st.messageErr {
		d.Src = image.NewUniform(th.StatusError)
	}
	wmsg := d.MeasureString(st.message).Ceil()
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	area := st.layout.Work
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Max.Y - descent - 16
	rect := image.Rect(px-8, py-ascent-6, px+wmsg+8, py+descent+6)
	draw.Draw(dst, rect, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	drawRect(dst, rect, th.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}
