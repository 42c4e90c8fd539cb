package paint

import (
	"image"
	"image/color"
)

const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 20
	DefaultBrushWidth = 2
)

// DefaultBrushColor is the initial pencil colour.
var DefaultBrushColor = color.NRGBA{A: 255}

// State is the pointer state of an Editor.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Shape is a transient line, rectangle or ellipse shown while a shaped tool
// is dragged. It is never part of a layer until the pointer is released.
type Shape struct {
	Tool  Tool
	Start image.Point
	End   image.Point
	Color color.NRGBA
	Width int
}

// Draw renders the shape onto img with the same rasterisation a commit uses.
func (sh Shape) Draw(img *image.NRGBA) {
	switch sh.Tool {
	case Line:
		StrokeLine(img, sh.Start, sh.End, sh.Color, sh.Width)
	case Rect:
		StrokeRect(img, Normalize(sh.Start, sh.End), sh.Color, sh.Width)
	case Oval:
		StrokeEllipse(img, Normalize(sh.Start, sh.End), sh.Color, sh.Width)
	}
}

// Editor drives a Store from pointer gestures and records undo history for
// every mutation it makes. It is not safe for concurrent use; one goroutine
// owns it.
type Editor struct {
	store   *Store
	history *History

	tool  Tool
	state State
	start image.Point
	last  image.Point

	brush     color.NRGBA
	width     int
	eraser    color.NRGBA
	tolerance int

	preview   *Shape
	composite *image.NRGBA
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithHistoryLimit bounds the undo stack.
func WithHistoryLimit(n int) EditorOption {
	return func(e *Editor) { e.history = NewHistory(n) }
}

// WithFillTolerance sets the bucket tool's colour-distance threshold.
func WithFillTolerance(t int) EditorOption {
	return func(e *Editor) {
		if t >= 0 {
			e.tolerance = t
		}
	}
}

// WithBrush sets the initial brush colour and width.
func WithBrush(c color.NRGBA, width int) EditorOption {
	return func(e *Editor) {
		e.brush = c
		e.width = clampWidth(width)
	}
}

// WithEraserColor sets the colour the eraser paints with.
func WithEraserColor(c color.NRGBA) EditorOption {
	return func(e *Editor) { e.eraser = c }
}

// NewEditor wraps s. The editor takes ownership of the store.
func NewEditor(s *Store, opts ...EditorOption) *Editor {
	e := &Editor{
		store:     s,
		history:   NewHistory(DefaultHistoryLimit),
		brush:     DefaultBrushColor,
		width:     DefaultBrushWidth,
		eraser:    White,
		tolerance: DefaultFillTolerance,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Editor) Store() *Store { return e.store }
func (e *Editor) History() *History { return e.history }
func (e *Editor) Tool() Tool { return e.tool }
func (e *Editor) State() State { return e.state }
func (e *Editor) BrushColor() color.NRGBA { return e.brush }
func (e *Editor) BrushWidth() int { return e.width }
func (e *Editor) EraserColor() color.NRGBA { return e.eraser }
func (e *Editor) Tolerance() int { return e.tolerance }

// SetBrushColor replaces the brush colour.
func (e *Editor) SetBrushColor(c color.NRGBA) { e.brush = c }

// SetBrushWidth sets the brush width clamped to [MinBrushWidth, MaxBrushWidth].
func (e *Editor) SetBrushWidth(w int) { e.width = clampWidth(w) }

// SetTool switches tools, abandoning any gesture in progress.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.reset()
}

// Preview returns the shape being dragged, if any.
func (e *Editor) Preview() (Shape, bool) {
	if e.preview == nil {
		return Shape{}, false
	}
	return *e.preview, true
}

// Composite returns the flattened canvas. The result is cached until the next
// mutation and must not be modified by callers.
func (e *Editor) Composite() *image.NRGBA {
	if e.composite == nil {
		e.composite = Composite(e.store)
	}
	return e.composite
}

// Invalidate drops the cached composite. Callers that change layer pixels
// directly must call it.
func (e *Editor) Invalidate() { e.composite = nil }

// PointerDown begins a gesture at p in canvas coordinates. Nothing happens
// while the active layer is hidden or locked. Every tool pushes an undo entry
// first except the eyedropper, which only changes the brush colour, and a
// bucket fill that would change no pixel.
func (e *Editor) PointerDown(p image.Point) {
	if e.state == Drawing {
		e.finish(e.last)
	}
	if !e.store.Drawable() {
		return
	}
	e.last = p
	switch e.tool {
	case Eyedropper:
		e.brush = SampleAt(e.Composite(), p.X, p.Y)
	case Bucket:
		img := e.store.Active().Image
		if !p.In(img.Rect) || ColorDistance(img.NRGBAAt(p.X, p.Y), e.brush) <= e.tolerance {
			return
		}
		e.history.Push(e.store)
		FloodFill(img, p, e.brush, e.tolerance)
		e.Invalidate()
	default:
		e.history.Push(e.store)
		e.state = Drawing
		e.start = p
		if e.tool.Shaped() {
			e.preview = &Shape{Tool: e.tool, Start: p, End: p, Color: e.brush, Width: e.width}
		}
	}
}

// PointerMove extends the gesture in progress. Freehand tools paint as they
// move; shaped tools only update the preview.
func (e *Editor) PointerMove(p image.Point) {
	e.last = p
	if e.state != Drawing {
		return
	}
	switch e.tool {
	case Pencil:
		StrokeLine(e.store.Active().Image, e.start, p, e.brush, e.width)
		e.start = p
		e.Invalidate()
	case Eraser:
		StrokeLine(e.store.Active().Image, e.start, p, e.eraser, e.width*2)
		e.start = p
		e.Invalidate()
	default:
		if e.preview != nil {
			e.preview.End = p
		}
	}
}

// PointerUp completes the gesture at p.
func (e *Editor) PointerUp(p image.Point) {
	e.last = p
	if e.state != Drawing {
		return
	}
	e.finish(p)
}

// PointerLeave finalises any gesture at the last known pointer position.
func (e *Editor) PointerLeave() {
	if e.state == Drawing {
		e.finish(e.last)
	}
}

func (e *Editor) finish(p image.Point) {
	if e.tool.Shaped() {
		sh := Shape{Tool: e.tool, Start: e.start, End: p, Color: e.brush, Width: e.width}
		sh.Draw(e.store.Active().Image)
		e.Invalidate()
	}
	e.reset()
}

func (e *Editor) reset() {
	e.state = Idle
	e.preview = nil
}

// Undo reverts the most recent mutation.
func (e *Editor) Undo() bool {
	e.reset()
	if !e.history.Undo(e.store) {
		return false
	}
	e.Invalidate()
	return true
}

// Redo reapplies the most recently undone mutation.
func (e *Editor) Redo() bool {
	e.reset()
	if !e.history.Redo(e.store) {
		return false
	}
	e.Invalidate()
	return true
}

// AddLayer appends a transparent layer and makes it active.
func (e *Editor) AddLayer(name string) int {
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.AddLayer(name, Transparent)
}

// DeleteLayer removes the active layer unless it is the last one.
func (e *Editor) DeleteLayer() bool {
	if e.store.Len() <= 1 {
		return false
	}
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.DeleteActiveLayer()
}

// MoveLayer reorders a layer. Moving a layer onto its own index records
// nothing.
func (e *Editor) MoveLayer(from, to int) error {
	if err := e.store.checkIndex(from); err != nil {
		return err
	}
	if err := e.store.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return e.store.Select(to)
	}
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.Reorder(from, to)
}

// RenameLayer renames layer i. Empty names are ignored.
func (e *Editor) RenameLayer(i int, name string) error {
	if err := e.store.checkIndex(i); err != nil {
		return err
	}
	if name == "" || e.store.layers[i].Name == name {
		return nil
	}
	e.history.Push(e.store)
	return e.store.Rename(i, name)
}

// SelectLayer makes layer i active. Selection is not recorded in history.
func (e *Editor) SelectLayer(i int) error {
	e.reset()
	return e.store.Select(i)
}

// SetVisible shows or hides layer i. Visibility is not recorded in history.
func (e *Editor) SetVisible(i int, visible bool) error {
	if err := e.store.SetVisible(i, visible); err != nil {
		return err
	}
	e.Invalidate()
	return nil
}

// SetLocked locks or unlocks layer i. Locks are not recorded in history.
func (e *Editor) SetLocked(i int, locked bool) error {
	return e.store.SetLocked(i, locked)
}

// ResizeCanvas resizes every layer.
func (e *Editor) ResizeCanvas(width, height int, mode ResizeMode) error {
	if !ValidSize(width, height) {
		return ErrInvalidSize
	}
	e.reset()
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.ResizeCanvas(width, height, mode)
}

// Clear refills the active layer.
func (e *Editor) Clear() bool {
	if !e.store.Drawable() {
		return false
	}
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.ClearActive()
}

// ImportImage adds img as a new layer fitted to the canvas.
func (e *Editor) ImportImage(name string, img image.Image) int {
	e.history.Push(e.store)
	e.Invalidate()
	return e.store.ImportImage(name, img)
}

// Snapshot returns an independent copy of the current state, suitable for
// handing to another goroutine.
func (e *Editor) Snapshot() Snapshot { return Capture(e.store) }

// Install replaces the whole document with snap, recording the previous
// document so the replacement can be undone.
func (e *Editor) Install(snap Snapshot) {
	e.reset()
	e.history.Push(e.store)
	snap.Restore(e.store)
	e.Invalidate()
}

func clampWidth(w int) int {
	if w < MinBrushWidth {
		return MinBrushWidth
	}
	if w > MaxBrushWidth {
		return MaxBrushWidth
	}
	return w
}
