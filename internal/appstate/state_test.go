package appstate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	pnt "github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
)

type fakeDialogs struct {
	path string
	err  error
}

func (f *fakeDialogs) OpenFile(string, string, string, ...string) (string, error) {
	return f.path, f.err
}

func (f *fakeDialogs) SaveFile(string, string, string, ...string) (string, error) {
	return f.path, f.err
}

func newTestApp(t *testing.T, opts ...Option) (*AppState, *fakeDialogs) {
	t.Helper()
	s, err := pnt.NewStore(40, 30)
	require.NoError(t, err)
	d := &fakeDialogs{}
	opts = append([]Option{WithEditor(pnt.NewEditor(s)), WithSize(1000, 700), WithDialogs(d)}, opts...)
	return New(opts...), d
}

func (a *AppState) testLayout() Layout {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layoutLocked()
}

func click(a *AppState, p image.Point) {
	a.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func dragOnCanvas(a *AppState, from, to image.Point) {
	l := a.testLayout()
	p0, p1 := l.Canvas.Min.Add(from), l.Canvas.Min.Add(to)
	a.handleMouse(mouse.Event{X: float32(p0.X), Y: float32(p0.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(p1.X), Y: float32(p1.Y), Direction: mouse.DirNone})
	a.handleMouse(mouse.Event{X: float32(p1.X), Y: float32(p1.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func press(r rune, code key.Code, mods key.Modifiers) key.Event {
	return key.Event{Rune: r, Code: code, Modifiers: mods, Direction: key.DirPress}
}

func pixel(a *AppState, layer int, x, y int) color.NRGBA {
	return a.Editor().Store().Layer(layer).Image.NRGBAAt(x, y)
}

func TestNewDefaults(t *testing.T) {
	a, _ := newTestApp(t)
	assert.True(t, a.Editing())
	assert.Equal(t, pnt.DefaultBrushColor, paletteAt(a.colorIdx).Color)
	assert.Equal(t, pnt.DefaultBrushWidth, widthAt(a.widthIdx))
}

func TestNewWithoutEditorUsesConfig(t *testing.T) {
	a := New(WithDialogs(&fakeDialogs{}))
	w, h := a.Editor().Store().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 1, a.Editor().Store().Len())
}

func TestPencilStrokeAndUndoShortcut(t *testing.T) {
	a, _ := newTestApp(t)
	dragOnCanvas(a, image.Pt(5, 5), image.Pt(20, 5))
	assert.Equal(t, color.NRGBA{A: 255}, pixel(a, 0, 12, 5))
	assert.Equal(t, pnt.Idle, a.Editor().State())

	assert.True(t, a.handleKey(press('z', key.CodeZ, key.ModControl)))
	assert.Equal(t, pnt.White, pixel(a, 0, 12, 5))
	assert.True(t, a.handleKey(press('y', key.CodeY, key.ModControl)))
	assert.Equal(t, color.NRGBA{A: 255}, pixel(a, 0, 12, 5))
}

func TestLeavingCanvasFinishesStroke(t *testing.T) {
	a, _ := newTestApp(t)
	a.Editor().SetTool(pnt.Line)
	l := a.testLayout()
	p0 := l.Canvas.Min.Add(image.Pt(2, 2))
	a.handleMouse(mouse.Event{X: float32(p0.X), Y: float32(p0.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(l.Canvas.Max.X + 30), Y: float32(p0.Y), Direction: mouse.DirNone})
	assert.Equal(t, pnt.Idle, a.Editor().State())
	_, ok := a.Editor().Preview()
	assert.False(t, ok)
}

func TestLockedLayerRefusesStroke(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Editor().SetLocked(0, true))
	dragOnCanvas(a, image.Pt(5, 5), image.Pt(20, 5))
	assert.Equal(t, pnt.White, pixel(a, 0, 12, 5))
	assert.True(t, a.messageErr)
	assert.Equal(t, 0, a.Editor().History().Len())
}

func TestToolbarClicks(t *testing.T) {
	a, _ := newTestApp(t)
	l := a.testLayout()

	click(a, center(l.Tools[3]))
	assert.Equal(t, pnt.Oval, a.Editor().Tool())

	click(a, center(l.Swatches[2]))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, a.Editor().BrushColor())

	click(a, center(l.Widths[4]))
	assert.Equal(t, widthAt(4), a.Editor().BrushWidth())

	assert.True(t, a.handleKey(press('b', key.CodeB, 0)))
	assert.Equal(t, pnt.Bucket, a.Editor().Tool())
}

func TestLayerPanel(t *testing.T) {
	a, _ := newTestApp(t)
	l := a.testLayout()

	click(a, center(l.LayerButtons[layerAdd]))
	require.Equal(t, 2, a.Editor().Store().Len())

	a.mu.Lock()
	rows := a.panel.Layout(l.Rows, rowHeight)
	a.mu.Unlock()
	require.Len(t, rows, 2)
	top := rows[0]
	require.Equal(t, 1, top.Layer)

	click(a, center(top.Eye))
	assert.False(t, a.Editor().Store().Layer(1).Visible)
	click(a, center(top.Lock))
	assert.True(t, a.Editor().Store().Layer(1).Locked)

	// Double-click the name to rename.
	click(a, center(top.Name))
	click(a, center(top.Name))
	require.Equal(t, 1, a.renaming)
	a.handleKey(press('!', 0, 0))
	a.handleKey(press(0, key.CodeReturnEnter, 0))
	assert.Equal(t, "Layer 1!", a.Editor().Store().Layer(1).Name)
	assert.Equal(t, -1, a.renaming)

	click(a, center(l.LayerButtons[layerDown]))
	assert.Equal(t, "Layer 1!", a.Editor().Store().Layer(0).Name)

	click(a, center(l.LayerButtons[layerDelete]))
	assert.Equal(t, 1, a.Editor().Store().Len())
	click(a, center(l.LayerButtons[layerDelete]))
	assert.Equal(t, 1, a.Editor().Store().Len())
}

func TestDragReordersLayers(t *testing.T) {
	a, _ := newTestApp(t)
	a.Editor().AddLayer("Top")
	l := a.testLayout()
	a.mu.Lock()
	rows := a.panel.Layout(l.Rows, rowHeight)
	a.mu.Unlock()

	from, to := center(rows[1].Name), center(rows[0].Name)
	a.handleMouse(mouse.Event{X: float32(from.X), Y: float32(from.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(to.X), Y: float32(to.Y), Direction: mouse.DirNone})
	a.handleMouse(mouse.Event{X: float32(to.X), Y: float32(to.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	assert.Equal(t, "Top", a.Editor().Store().Layer(0).Name)
	assert.Equal(t, pnt.BackgroundName, a.Editor().Store().Layer(1).Name)
}

func TestFinishEditingAutoSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note", "sketch.pproj")
	a, _ := newTestApp(t, WithAutoSavePath(path))
	dragOnCanvas(a, image.Pt(5, 5), image.Pt(20, 5))

	require.NoError(t, a.FinishEditing())
	assert.False(t, a.Editing())
	assert.Equal(t, path, a.Path())

	snap, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 255}, snap.Layers[0].Image.NRGBAAt(12, 5))

	preview := a.Preview()
	require.NotNil(t, preview)
	assert.Equal(t, image.Rect(0, 0, 40, 30), preview.Bounds())
	assert.Same(t, preview, a.Preview())

	// Input is ignored until editing restarts.
	assert.False(t, a.handleKey(press('l', key.CodeL, 0)))
	l := a.testLayout()
	click(a, center(l.Canvas))
	click(a, center(l.Canvas))
	assert.True(t, a.Editing())
}

func TestFinishEditingReportsSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	a, _ := newTestApp(t, WithAutoSavePath(filepath.Join(blocker, "x.pproj")))

	err := a.FinishEditing()
	require.Error(t, err)
	assert.False(t, a.Editing())
	assert.True(t, a.messageErr)

	a.StartEditing()
	assert.True(t, a.Editing())
}

func TestLoadProjectFromPath(t *testing.T) {
	src, _ := newTestApp(t)
	src.Editor().AddLayer("Ink")
	path := filepath.Join(t.TempDir(), "a.pproj")
	require.NoError(t, project.Save(path, src.Editor().Snapshot()))

	a, _ := newTestApp(t)
	a.Editor().AddLayer("scratch")
	assert.True(t, a.LoadProjectFromPath(path))
	assert.Equal(t, 2, a.Editor().Store().Len())
	assert.Equal(t, "Ink", a.Editor().Store().Layer(1).Name)
	assert.Equal(t, 0, a.Editor().History().Len())
	assert.Equal(t, path, a.Path())

	before := a.Editor().Snapshot()
	assert.False(t, a.LoadProjectFromPath(filepath.Join(t.TempDir(), "missing.pproj")))
	assert.Equal(t, len(before.Layers), a.Editor().Store().Len())
	assert.True(t, a.messageErr)
}

func TestSaveRefusesConcurrentSave(t *testing.T) {
	release := make(chan struct{})
	saveProject = func(string, pnt.Snapshot) error {
		<-release
		return nil
	}
	t.Cleanup(func() { saveProject = project.Save })

	a, _ := newTestApp(t)
	a.mu.Lock()
	first := a.startSave("first.pproj")
	second := a.startSave("second.pproj")
	busy := a.saving
	a.mu.Unlock()
	close(release)
	a.saves.Wait()

	assert.True(t, first)
	assert.False(t, second)
	assert.True(t, busy)
	assert.Equal(t, "first.pproj", a.Path())
	a.mu.Lock()
	assert.False(t, a.saving)
	a.mu.Unlock()
}

func TestSaveShortcutUsesDialog(t *testing.T) {
	a, d := newTestApp(t)
	d.path = filepath.Join(t.TempDir(), "picked")
	assert.True(t, a.handleKey(press('s', key.CodeS, key.ModControl)))
	a.saves.Wait()
	assert.Equal(t, d.path+project.Ext, a.Path())
	_, err := os.Stat(d.path + project.Ext)
	assert.NoError(t, err)
}

func TestDialogCancelIsQuiet(t *testing.T) {
	a, d := newTestApp(t)
	d.err = ErrCancelled
	a.handleKey(press('o', key.CodeO, key.ModControl))
	assert.False(t, a.messageErr)

	d.err = errors.New("no display")
	a.handleKey(press('o', key.CodeO, key.ModControl))
	assert.True(t, a.messageErr)
}

func TestExportAndImportShortcuts(t *testing.T) {
	a, d := newTestApp(t)
	dir := t.TempDir()

	d.path = filepath.Join(dir, "out.png")
	a.handleKey(press('e', key.CodeE, key.ModControl))
	_, err := os.Stat(d.path)
	require.NoError(t, err)

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 255})
	d.path = filepath.Join(dir, "stamp.png")
	f, err := os.Create(d.path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	a.handleKey(press('i', key.CodeI, key.ModControl))
	require.Equal(t, 2, a.Editor().Store().Len())
	assert.Equal(t, "stamp", a.Editor().Store().Active().Name)
}

func TestRenderFrame(t *testing.T) {
	a, _ := newTestApp(t)
	a.mu.Lock()
	st := a.paintStateLocked()
	a.mu.Unlock()

	dst := image.NewRGBA(st.layout.Window)
	require.True(t, renderFrame(context.Background(), dst, st))
	c := center(st.layout.Canvas)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(c.X, c.Y))
	assert.Equal(t, a.theme.ToolbarBackground, dst.RGBAAt(1, 1))
	assert.Equal(t, a.theme.StatusBackground, dst.RGBAAt(st.layout.Status.Min.X+1, st.layout.Status.Min.Y+1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, renderFrame(ctx, dst, st))
}

func TestRenderPreviewFrame(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.FinishEditing())
	a.mu.Lock()
	st := a.paintStateLocked()
	a.mu.Unlock()

	require.NotNil(t, st.decorated)
	dst := image.NewRGBA(st.layout.Window)
	require.True(t, renderFrame(context.Background(), dst, st))
	c := center(st.layout.Canvas)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(c.X, c.Y))
	assert.Equal(t, a.theme.Background, dst.RGBAAt(1, 1))
}
