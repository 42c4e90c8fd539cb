package paint

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, w, h int, opts ...EditorOption) *Editor {
	t.Helper()
	s, err := NewStore(w, h)
	require.NoError(t, err)
	return NewEditor(s, opts...)
}

func drag(e *Editor, pts ...image.Point) {
	e.PointerDown(pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		e.PointerMove(p)
	}
	e.PointerUp(pts[len(pts)-1])
}

func TestEditorDefaults(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	assert.Equal(t, Pencil, e.Tool())
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, DefaultBrushColor, e.BrushColor())
	assert.Equal(t, DefaultBrushWidth, e.BrushWidth())
	assert.Equal(t, White, e.EraserColor())
	assert.Equal(t, DefaultFillTolerance, e.Tolerance())
	assert.Equal(t, DefaultHistoryLimit, e.History().Limit())
}

func TestEditorBrushWidthClamped(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	e.SetBrushWidth(0)
	assert.Equal(t, MinBrushWidth, e.BrushWidth())
	e.SetBrushWidth(99)
	assert.Equal(t, MaxBrushWidth, e.BrushWidth())
}

func TestEditorLineCommitsOnRelease(t *testing.T) {
	e := newTestEditor(t, 100, 100)
	e.AddLayer("ink")
	e.SetTool(Line)
	e.SetBrushWidth(3)

	e.PointerDown(image.Pt(10, 10))
	assert.Equal(t, Drawing, e.State())
	e.PointerMove(image.Pt(50, 20))
	e.PointerMove(image.Pt(80, 40))

	sh, ok := e.Preview()
	require.True(t, ok)
	assert.Equal(t, image.Pt(10, 10), sh.Start)
	assert.Equal(t, image.Pt(80, 40), sh.End)

	ink := e.Store().Active().Image
	assert.Equal(t, Transparent, ink.NRGBAAt(50, 20), "preview leaked into the layer")

	e.PointerUp(image.Pt(90, 90))
	assert.Equal(t, Idle, e.State())
	_, ok = e.Preview()
	assert.False(t, ok)

	assert.Equal(t, DefaultBrushColor, ink.NRGBAAt(50, 50))
	assert.Equal(t, Transparent, ink.NRGBAAt(50, 20))
	assert.Equal(t, Transparent, ink.NRGBAAt(80, 40))
	assert.Equal(t, 2, e.History().Len())
}

func TestEditorPencilChainsSegments(t *testing.T) {
	e := newTestEditor(t, 20, 20)
	e.SetBrushWidth(1)
	drag(e, image.Pt(1, 1), image.Pt(5, 1), image.Pt(5, 5), image.Pt(5, 5))

	bg := e.Store().Layer(0).Image
	assert.Equal(t, DefaultBrushColor, bg.NRGBAAt(3, 1))
	assert.Equal(t, DefaultBrushColor, bg.NRGBAAt(5, 3))
	assert.Equal(t, White, bg.NRGBAAt(3, 3))
	assert.Equal(t, 1, e.History().Len())
}

func TestEditorEraserPaintsWhiteAtDoubleWidth(t *testing.T) {
	e := newTestEditor(t, 20, 20)
	e.AddLayer("ink")
	e.SetTool(Eraser)
	e.SetBrushWidth(2)
	drag(e, image.Pt(2, 10), image.Pt(15, 10), image.Pt(15, 10))

	ink := e.Store().Active().Image
	assert.Equal(t, White, ink.NRGBAAt(8, 10))
	assert.Equal(t, White, ink.NRGBAAt(8, 11))
	assert.Equal(t, White, ink.NRGBAAt(8, 9))
	assert.Equal(t, Transparent, ink.NRGBAAt(8, 14))
}

func TestEditorIgnoresLockedAndHiddenLayers(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	require.NoError(t, e.SetLocked(0, true))

	for _, tool := range Tools() {
		e.SetTool(tool)
		e.PointerDown(image.Pt(2, 2))
		e.PointerMove(image.Pt(6, 6))
		e.PointerUp(image.Pt(6, 6))
		assert.Equal(t, Idle, e.State(), tool.String())
	}
	assert.Equal(t, 0, e.History().Len())
	assert.Equal(t, White, e.Store().Layer(0).Image.NRGBAAt(4, 4))

	require.NoError(t, e.SetLocked(0, false))
	require.NoError(t, e.SetVisible(0, false))
	e.SetTool(Pencil)
	e.PointerDown(image.Pt(1, 1))
	assert.Equal(t, Idle, e.State())
}

func TestEditorEyedropperSamplesComposite(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	e.AddLayer("ink")
	e.Store().Active().Image.SetNRGBA(0, 0, red)
	e.Invalidate()

	before := e.History().Len()
	e.SetTool(Eyedropper)
	e.PointerDown(image.Pt(-5, -5))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, red, e.BrushColor())
	assert.Equal(t, before, e.History().Len())

	e.PointerDown(image.Pt(9, 9))
	assert.Equal(t, White, e.BrushColor(), "transparent layer over white background")
}

func TestEditorBucket(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	e.SetTool(Bucket)
	e.SetBrushColor(red)

	e.PointerDown(image.Pt(5, 5))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 1, e.History().Len())
	assert.Equal(t, red, e.Store().Layer(0).Image.NRGBAAt(0, 9))
	assert.Equal(t, red, e.Composite().NRGBAAt(9, 0))

	e.PointerDown(image.Pt(1, 1))
	assert.Equal(t, 1, e.History().Len(), "no-op fill recorded history")
}

func TestEditorUndoRedo(t *testing.T) {
	e := newTestEditor(t, 20, 20)
	before := Capture(e.Store()).Store()

	drag(e, image.Pt(2, 2), image.Pt(10, 10), image.Pt(10, 10))
	after := Capture(e.Store()).Store()
	assert.NotEqual(t, White, e.Composite().NRGBAAt(6, 6))

	require.True(t, e.Undo())
	sameStore(t, e.Store(), before)
	assert.Equal(t, White, e.Composite().NRGBAAt(6, 6), "stale composite after undo")

	require.True(t, e.Redo())
	sameStore(t, e.Store(), after)
	assert.False(t, e.Redo())
}

func TestEditorUndoAbandonsGesture(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	e.SetTool(Rect)
	e.PointerDown(image.Pt(1, 1))
	require.True(t, e.Undo())
	assert.Equal(t, Idle, e.State())
	_, ok := e.Preview()
	assert.False(t, ok)
}

func TestEditorSetToolMidDragDiscardsPreview(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	e.SetTool(Rect)
	e.PointerDown(image.Pt(1, 1))
	e.PointerMove(image.Pt(8, 8))
	e.SetTool(Oval)

	assert.Equal(t, Idle, e.State())
	_, ok := e.Preview()
	assert.False(t, ok)
	e.PointerUp(image.Pt(8, 8))
	assert.Equal(t, White, e.Store().Layer(0).Image.NRGBAAt(1, 1))
}

func TestEditorLeaveFinalisesAtLastPoint(t *testing.T) {
	e := newTestEditor(t, 20, 20)
	e.SetTool(Rect)
	e.SetBrushWidth(1)
	e.PointerDown(image.Pt(2, 2))
	e.PointerMove(image.Pt(12, 12))
	e.PointerLeave()

	assert.Equal(t, Idle, e.State())
	bg := e.Store().Layer(0).Image
	assert.Equal(t, DefaultBrushColor, bg.NRGBAAt(12, 12))
	assert.Equal(t, DefaultBrushColor, bg.NRGBAAt(2, 7))
	assert.Equal(t, White, bg.NRGBAAt(7, 7))
}

func TestEditorOvalNormalisesCorners(t *testing.T) {
	e := newTestEditor(t, 20, 20)
	e.SetTool(Oval)
	e.SetBrushColor(red)
	drag(e, image.Pt(10, 10), image.Pt(0, 0))

	bg := e.Store().Layer(0).Image
	assert.Equal(t, red, bg.NRGBAAt(5, 0))
	assert.Equal(t, White, bg.NRGBAAt(5, 5))
}

func TestEditorLayerMutatorsRecordHistory(t *testing.T) {
	e := newTestEditor(t, 8, 8)

	e.AddLayer("a")
	e.AddLayer("b")
	require.NoError(t, e.MoveLayer(2, 0))
	require.NoError(t, e.RenameLayer(0, "bottom"))
	require.NoError(t, e.ResizeCanvas(4, 4, ResizeCrop))
	assert.True(t, e.Clear())
	assert.True(t, e.DeleteLayer())
	assert.Equal(t, 7, e.History().Len())

	require.NoError(t, e.SetVisible(0, false))
	require.NoError(t, e.SetLocked(0, true))
	require.NoError(t, e.SelectLayer(0))
	require.NoError(t, e.MoveLayer(1, 1))
	require.NoError(t, e.RenameLayer(0, ""))
	assert.Equal(t, 7, e.History().Len(), "untracked edits recorded history")

	for e.Undo() {
	}
	w, h := e.Store().Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 1, e.Store().Len())
}

func TestEditorDeleteLastLayerRecordsNothing(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	assert.False(t, e.DeleteLayer())
	assert.Equal(t, 0, e.History().Len())
}

func TestEditorResizeInvalid(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	assert.ErrorIs(t, e.ResizeCanvas(-1, 4, ResizeScale), ErrInvalidSize)
	assert.Equal(t, 0, e.History().Len())
}

func TestEditorInstallIsUndoable(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	other := newTestEditor(t, 6, 3)
	other.AddLayer("x")
	other.Store().Active().Image.SetNRGBA(1, 1, red)

	e.Install(other.Snapshot())
	w, h := e.Store().Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, red, e.Composite().NRGBAAt(1, 1))

	// The installed state does not alias the source editor.
	other.Store().Active().Image.SetNRGBA(2, 2, red)
	assert.Equal(t, Transparent, e.Store().Active().Image.NRGBAAt(2, 2))

	require.True(t, e.Undo())
	w, _ = e.Store().Size()
	assert.Equal(t, 4, w)
}

func TestEditorSnapshotIsIndependent(t *testing.T) {
	e := newTestEditor(t, 5, 5)
	snap := e.Snapshot()
	drag(e, image.Pt(0, 0), image.Pt(4, 4), image.Pt(4, 4))
	assert.True(t, bytes.Equal(snap.Layers[0].Image.Pix, whiteImage(5, 5).Pix))
}

func TestEditorCompositeCacheInvalidatedByVisibility(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	e.AddLayer("ink")
	e.Store().Active().Image.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 255})
	e.Invalidate()
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, e.Composite().NRGBAAt(0, 0))
	require.NoError(t, e.SetVisible(1, false))
	assert.Equal(t, White, e.Composite().NRGBAAt(0, 0))
}
