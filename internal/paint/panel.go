package paint

import "image"

// PanelPart names the hot zones of a layer row.
type PanelPart int

const (
	PartNone PanelPart = iota
	PartEye
	PartLock
	PartName
)

// PanelRow is the on-screen geometry of one layer in the layer list.
type PanelRow struct {
	Layer  int
	Bounds image.Rectangle
	Eye    image.Rectangle
	Lock   image.Rectangle
	Name   image.Rectangle
}

// Panel translates layer-list gestures into Editor calls. Geometry comes from
// Layout and is independent of any toolkit; the Editor performs the
// mutations.
type Panel struct {
	editor   *Editor
	rows     []PanelRow
	dragging int
}

// NewPanel returns a panel controlling e.
func NewPanel(e *Editor) *Panel {
	return &Panel{editor: e, dragging: -1}
}

// Layout lays out one row per layer inside area, top layer first, each
// rowHeight pixels tall. Rows that do not fit are omitted.
func (p *Panel) Layout(area image.Rectangle, rowHeight int) []PanelRow {
	p.rows = p.rows[:0]
	if rowHeight <= 0 {
		return nil
	}
	n := p.editor.Store().Len()
	icon := rowHeight
	for r := 0; r < n; r++ {
		y := area.Min.Y + r*rowHeight
		if y+rowHeight > area.Max.Y {
			break
		}
		b := image.Rect(area.Min.X, y, area.Max.X, y+rowHeight)
		eye := image.Rect(b.Min.X, b.Min.Y, b.Min.X+icon, b.Max.Y)
		lock := image.Rect(eye.Max.X, b.Min.Y, eye.Max.X+icon, b.Max.Y)
		p.rows = append(p.rows, PanelRow{
			Layer:  n - 1 - r,
			Bounds: b,
			Eye:    eye,
			Lock:   lock,
			Name:   image.Rect(lock.Max.X, b.Min.Y, b.Max.X, b.Max.Y),
		})
	}
	out := make([]PanelRow, len(p.rows))
	copy(out, p.rows)
	return out
}

// RowAt returns the layer index of the row containing pt.
func (p *Panel) RowAt(pt image.Point) (int, bool) {
	for _, r := range p.rows {
		if pt.In(r.Bounds) {
			return r.Layer, true
		}
	}
	return -1, false
}

// HitAt returns the layer and the part of its row under pt.
func (p *Panel) HitAt(pt image.Point) (int, PanelPart) {
	for _, r := range p.rows {
		if !pt.In(r.Bounds) {
			continue
		}
		switch {
		case pt.In(r.Eye):
			return r.Layer, PartEye
		case pt.In(r.Lock):
			return r.Layer, PartLock
		default:
			return r.Layer, PartName
		}
	}
	return -1, PartNone
}

// BeginDrag selects layer i and remembers it as the drag source.
func (p *Panel) BeginDrag(i int) error {
	if err := p.editor.SelectLayer(i); err != nil {
		return err
	}
	p.dragging = i
	return nil
}

// Dragging returns the layer being dragged.
func (p *Panel) Dragging() (int, bool) {
	return p.dragging, p.dragging >= 0
}

// CancelDrag abandons a drag without reordering.
func (p *Panel) CancelDrag() { p.dragging = -1 }

// Drop ends a drag at pt. Points above the first row target the top layer and
// points below the last row target the bottom one. It reports whether the
// stack changed.
func (p *Panel) Drop(pt image.Point) (bool, error) {
	from := p.dragging
	p.dragging = -1
	if from < 0 || len(p.rows) == 0 {
		return false, nil
	}
	to, ok := p.RowAt(pt)
	if !ok {
		switch {
		case pt.Y < p.rows[0].Bounds.Min.Y:
			to = p.rows[0].Layer
		case pt.Y >= p.rows[len(p.rows)-1].Bounds.Max.Y:
			to = p.rows[len(p.rows)-1].Layer
		default:
			return false, nil
		}
	}
	if to == from {
		return false, nil
	}
	if err := p.editor.MoveLayer(from, to); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleVisible flips the visibility of layer i.
func (p *Panel) ToggleVisible(i int) error {
	l := p.editor.Store().Layer(i)
	if l == nil {
		return p.editor.Store().checkIndex(i)
	}
	return p.editor.SetVisible(i, !l.Visible)
}

// ToggleLocked flips the lock of layer i.
func (p *Panel) ToggleLocked(i int) error {
	l := p.editor.Store().Layer(i)
	if l == nil {
		return p.editor.Store().checkIndex(i)
	}
	return p.editor.SetLocked(i, !l.Locked)
}

// Rename renames layer i. Empty names are ignored.
func (p *Panel) Rename(i int, name string) error {
	return p.editor.RenameLayer(i, name)
}
