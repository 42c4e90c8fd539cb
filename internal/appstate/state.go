// Package appstate is the interactive paint widget: a shiny window around a
// paint.Editor with a toolbar, a layer panel and a status bar, plus the host
// contract used to embed it.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/paintframe/internal/config"
	"github.com/example/paintframe/internal/notify"
	pnt "github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
	"github.com/example/paintframe/internal/render"
	"github.com/example/paintframe/internal/theme"
)

// Mode selects between interactive editing and the frozen preview.
type Mode int

const (
	ModeEdit Mode = iota
	ModePreview
)

const (
	messageDuration = 2500 * time.Millisecond
	doubleClick     = 400 * time.Millisecond
)

// saveProject writes a project archive. Tests replace it.
var saveProject = project.Save

// AppState holds the widget and the document it edits.
type AppState struct {
	// AutoSavePath is where FinishEditing saves the project. Empty disables
	// auto-save.
	AutoSavePath string

	mu       sync.Mutex
	editor   *pnt.Editor
	panel    *pnt.Panel
	theme    *theme.Theme
	notifier *notify.Notifier
	cfg      *config.Config
	dialogs  Dialogs
	size     image.Point
	mode     Mode
	path     string

	colorIdx int
	widthIdx int
	hover    Hit

	frozen     *image.RGBA
	decorated  *image.RGBA
	decorShift image.Point

	thumbs    []*image.RGBA
	thumbsFor *image.NRGBA

	renaming   int
	renameText string
	dropPoint  image.Point
	lastClick  time.Time
	lastPoint  image.Point

	message    string
	messageErr bool
	until      time.Time

	saving bool
	saves  sync.WaitGroup

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSize sets the window size in pixels.
func WithSize(width, height int) Option {
	return func(a *AppState) { a.size = image.Pt(width, height) }
}

// WithEditor sets the editor whose document is shown.
func WithEditor(e *pnt.Editor) Option { return func(a *AppState) { a.editor = e } }

// WithAutoSavePath sets AutoSavePath.
func WithAutoSavePath(path string) Option { return func(a *AppState) { a.AutoSavePath = path } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithNotifier sets the desktop notifier for save, load, export, copy and
// failure events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithConfig supplies defaults for a new document and the dialog start
// directory.
func WithConfig(c *config.Config) Option { return func(a *AppState) { a.cfg = c } }

// WithMode sets the initial mode.
func WithMode(m Mode) Option { return func(a *AppState) { a.mode = m } }

// WithDialogs replaces the native file dialogs.
func WithDialogs(d Dialogs) Option { return func(a *AppState) { a.dialogs = d } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options. Without WithEditor a
// blank document is created from the configuration.
func New(opts ...Option) *AppState {
	a := &AppState{
		updateCh: make(chan struct{}, 1),
		renaming: -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.cfg == nil {
		a.cfg = config.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.dialogs == nil {
		a.dialogs = nativeDialogs{}
	}
	if a.editor == nil {
		store, err := pnt.NewStore(a.cfg.CanvasWidth, a.cfg.CanvasHeight)
		if err != nil {
			log.Printf("canvas %dx%d: %v", a.cfg.CanvasWidth, a.cfg.CanvasHeight, err)
			store, _ = pnt.NewStore(config.DefaultCanvasWidth, config.DefaultCanvasHeight)
		}
		a.editor = pnt.NewEditor(store, a.cfg.EditorOptions()...)
	}
	a.panel = pnt.NewPanel(a.editor)
	if a.size.X <= 0 || a.size.Y <= 0 {
		w, h := a.editor.Store().Size()
		a.size = image.Pt(w+toolbarWidth+panelWidth+2*canvasMargin, h+headerHeight+statusHeight+2*canvasMargin)
	}
	a.colorIdx = EnsurePaletteColor(a.editor.BrushColor(), "")
	a.widthIdx = EnsureWidth(a.editor.BrushWidth())
	if a.mode == ModePreview {
		a.freezeLocked()
	}
	return a
}

// Editor returns the editor. Callers must not use it concurrently with a
// running window.
func (a *AppState) Editor() *pnt.Editor { return a.editor }

// Editing reports whether the widget is in interactive mode.
func (a *AppState) Editing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode == ModeEdit
}

// Path returns the file the document was last opened from or saved to.
func (a *AppState) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

// FinishEditing hides the chrome, freezes the widget to a static preview and
// saves to AutoSavePath when it is set. A save failure is logged, shown and
// returned; the widget stays frozen either way.
func (a *AppState) FinishEditing() error {
	a.saves.Wait()
	a.mu.Lock()
	a.freezeLocked()
	path := a.AutoSavePath
	snap := a.editor.Snapshot()
	a.mu.Unlock()
	defer a.Refresh()

	if path == "" {
		return nil
	}
	if err := saveProject(path, snap); err != nil {
		a.mu.Lock()
		a.fail("auto-save", err)
		a.mu.Unlock()
		return err
	}
	a.mu.Lock()
	a.path = path
	a.setMessage("saved "+path, false)
	a.mu.Unlock()
	a.notifier.Save(path)
	return nil
}

// StartEditing restores the chrome and resumes interactive drawing.
func (a *AppState) StartEditing() {
	a.mu.Lock()
	a.startEditingLocked()
	a.mu.Unlock()
	a.Refresh()
}

// LoadProjectFromPath replaces the document with the project at path. The
// current document is untouched when loading fails. Undo history starts
// afresh.
func (a *AppState) LoadProjectFromPath(path string) bool {
	snap, err := project.Load(path)
	a.mu.Lock()
	defer a.Refresh()
	defer a.mu.Unlock()
	if err != nil {
		a.fail("load", err)
		return false
	}
	a.installLocked(snap, path)
	a.editor.History().Reset()
	a.notifier.Load(path)
	return true
}

// Preview returns the flattened document as shown in preview mode. While
// editing it is rendered on demand.
func (a *AppState) Preview() *image.RGBA {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen != nil && a.mode == ModePreview {
		return a.frozen
	}
	return project.Flatten(a.editor.Composite())
}

// Refresh requests a repaint of a running window.
func (a *AppState) Refresh() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) freezeLocked() {
	if a.editor.State() == pnt.Drawing {
		a.editor.PointerLeave()
	}
	a.panel.CancelDrag()
	a.renaming = -1
	a.mode = ModePreview
	a.frozen = project.Flatten(a.editor.Composite())
	res := render.ApplyShadow(a.frozen, render.DefaultShadowOptions())
	a.decorated, a.decorShift = res.Image, res.Offset
}

func (a *AppState) startEditingLocked() {
	a.mode = ModeEdit
	a.decorated = nil
	a.frozen = nil
}

func (a *AppState) installLocked(snap pnt.Snapshot, path string) {
	a.editor.Install(snap)
	a.path = path
	if a.mode == ModePreview {
		a.freezeLocked()
	}
	a.setMessage("opened "+path, false)
}

func (a *AppState) setMessage(msg string, isErr bool) {
	log.Print(msg)
	a.message = msg
	a.messageErr = isErr
	a.until = time.Now().Add(messageDuration)
}

func (a *AppState) fail(op string, err error) {
	log.Printf("%s: %v", op, err)
	a.message = fmt.Sprintf("%s failed: %v", op, err)
	a.messageErr = true
	a.until = time.Now().Add(2 * messageDuration)
	a.notifier.Failure(op, err)
}

// startSave writes a snapshot of the document to path on a background
// goroutine. It refuses to start while another save is running.
func (a *AppState) startSave(path string) bool {
	if a.saving {
		a.setMessage("a save is already in progress", true)
		return false
	}
	snap := a.editor.Snapshot()
	a.saving = true
	a.saves.Add(1)
	a.setMessage("saving...", false)
	go func() {
		defer a.saves.Done()
		err := saveProject(path, snap)
		a.mu.Lock()
		a.saving = false
		if err != nil {
			a.fail("save", err)
		} else {
			a.path = path
			a.setMessage("saved "+path, false)
		}
		a.mu.Unlock()
		if err == nil {
			a.notifier.Save(path)
		}
		a.Refresh()
	}()
	return true
}

func (a *AppState) layoutLocked() Layout {
	w, h := a.editor.Store().Size()
	return ComputeLayout(a.size, image.Pt(w, h), a.mode == ModeEdit)
}

func (a *AppState) paintStateLocked() paintState {
	l := a.layoutLocked()
	comp := a.editor.Composite()
	st := paintState{
		layout:     l,
		theme:      a.theme,
		title:      a.path,
		composite:  comp,
		tool:       a.editor.Tool(),
		colorIdx:   a.colorIdx,
		widthIdx:   a.widthIdx,
		active:     a.editor.Store().ActiveIndex(),
		dropY:      -1,
		renaming:   a.renaming,
		renameText: a.renameText,
		hover:      a.hover,
		message:    a.message,
		messageErr: a.messageErr,
		until:      a.until,
		busy:       a.saving,
		decorated:  a.decorated,
		decorShift: a.decorShift,
	}
	if a.mode != ModeEdit {
		return st
	}
	st.shape, st.hasShape = a.editor.Preview()
	st.rows = a.panel.Layout(l.Rows, rowHeight)
	if comp != a.thumbsFor || len(a.thumbs) != a.editor.Store().Len() {
		a.thumbs = a.thumbs[:0]
		for _, layer := range a.editor.Store().Layers() {
			a.thumbs = append(a.thumbs, render.Thumbnail(layer.Image, image.Pt(rowHeight-4, rowHeight-4), a.theme.CheckerLight, a.theme.CheckerDark))
		}
		a.thumbsFor = comp
	}
	for i, layer := range a.editor.Store().Layers() {
		st.layers = append(st.layers, layerView{name: layer.Name, visible: layer.Visible, locked: layer.Locked, thumb: a.thumbs[i]})
	}
	if _, ok := a.panel.Dragging(); ok && a.dropPoint.In(l.Rows) {
		st.dropY = dropLine(st.rows, a.dropPoint)
	}
	return st
}

// dropLine returns the y coordinate of the row edge nearest to p.
func dropLine(rows []pnt.PanelRow, p image.Point) int {
	for _, r := range rows {
		if p.Y < r.Bounds.Min.Y+r.Bounds.Dy()/2 {
			return r.Bounds.Min.Y
		}
		if p.Y < r.Bounds.Max.Y {
			return r.Bounds.Max.Y
		}
	}
	if len(rows) > 0 {
		return rows[len(rows)-1].Bounds.Max.Y
	}
	return -1
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the widget in a window of s until the window closes.
func (a *AppState) Main(s screen.Screen) {
	a.mu.Lock()
	sz := a.size
	a.mu.Unlock()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: "PaintFrame"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			a.mu.Lock()
			a.size = image.Pt(e.WidthPx, e.HeightPx)
			a.mu.Unlock()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			a.mu.Lock()
			st := a.paintStateLocked()
			a.mu.Unlock()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.handleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}
