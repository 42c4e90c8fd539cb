package appstate

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/paintframe/internal/clipboard"
	pnt "github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
)

var imageExts = []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp"}

// handleMouse applies a pointer event and reports whether a repaint is
// needed.
func (a *AppState) handleMouse(e mouse.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := image.Pt(int(e.X), int(e.Y))
	l := a.layoutLocked()

	if a.mode == ModePreview {
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && a.isDoubleClick(p) {
			a.startEditingLocked()
			return true
		}
		return false
	}
	a.panel.Layout(l.Rows, rowHeight)

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if a.message != "" && time.Now().Before(a.until) && !a.saving {
			a.until = time.Time{}
		}
		return a.press(l, p)
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		return a.release(l, p)
	case mouse.DirNone:
		return a.move(l, p)
	}
	return false
}

func (a *AppState) isDoubleClick(p image.Point) bool {
	now := time.Now()
	d := p.Sub(a.lastPoint)
	double := now.Sub(a.lastClick) < doubleClick && d.X*d.X+d.Y*d.Y <= 16
	a.lastClick, a.lastPoint = now, p
	if double {
		a.lastClick = time.Time{}
	}
	return double
}

func (a *AppState) press(l Layout, p image.Point) bool {
	double := a.isDoubleClick(p)
	hit := l.HitTest(p)
	if a.renaming >= 0 && hit.Kind != HitLayer {
		a.commitRename()
	}
	switch hit.Kind {
	case HitCanvas:
		if !a.editor.Store().Drawable() {
			a.setMessage("the active layer is locked or hidden", true)
			return true
		}
		a.editor.PointerDown(l.ToCanvas(p))
		if a.editor.Tool() == pnt.Eyedropper {
			a.colorIdx = EnsurePaletteColor(a.editor.BrushColor(), "")
		}
	case HitTool:
		a.editor.SetTool(pnt.Tools()[hit.Index])
	case HitSwatch:
		a.colorIdx = hit.Index
		a.editor.SetBrushColor(paletteAt(hit.Index).Color)
	case HitWidth:
		a.widthIdx = hit.Index
		a.editor.SetBrushWidth(widthAt(hit.Index))
	case HitLayer:
		a.pressLayer(p, double)
	case HitLayerButton:
		a.layerButton(hit.Index)
	case HitShortcut:
		a.runAction(shortcuts[hit.Index].action)
	default:
		return false
	}
	return true
}

func (a *AppState) pressLayer(p image.Point, double bool) {
	i, part := a.panel.HitAt(p)
	if i < 0 {
		return
	}
	var err error
	switch part {
	case pnt.PartEye:
		err = a.panel.ToggleVisible(i)
	case pnt.PartLock:
		err = a.panel.ToggleLocked(i)
	default:
		if double {
			a.panel.CancelDrag()
			a.renaming = i
			a.renameText = a.editor.Store().Layer(i).Name
			return
		}
		if a.renaming >= 0 {
			a.commitRename()
		}
		err = a.panel.BeginDrag(i)
		a.dropPoint = p
	}
	if err != nil {
		a.fail("layer", err)
	}
}

func (a *AppState) layerButton(idx int) {
	active := a.editor.Store().ActiveIndex()
	switch idx {
	case layerAdd:
		a.editor.AddLayer("")
	case layerDelete:
		if !a.editor.DeleteLayer() {
			a.setMessage("the last layer cannot be deleted", true)
		}
	case layerUp:
		if active+1 < a.editor.Store().Len() {
			_ = a.editor.MoveLayer(active, active+1)
		}
	case layerDown:
		if active > 0 {
			_ = a.editor.MoveLayer(active, active-1)
		}
	}
}

func (a *AppState) release(l Layout, p image.Point) bool {
	if a.editor.State() == pnt.Drawing {
		a.editor.PointerUp(l.ToCanvas(p))
		return true
	}
	if _, ok := a.panel.Dragging(); ok {
		if !p.In(l.Rows) {
			a.panel.CancelDrag()
			return true
		}
		if _, err := a.panel.Drop(p); err != nil {
			a.fail("move layer", err)
		}
		return true
	}
	return false
}

func (a *AppState) move(l Layout, p image.Point) bool {
	if a.editor.State() == pnt.Drawing {
		if p.In(l.Canvas) {
			a.editor.PointerMove(l.ToCanvas(p))
		} else {
			a.editor.PointerLeave()
		}
		return true
	}
	if _, ok := a.panel.Dragging(); ok {
		a.dropPoint = p
		return true
	}
	hit := l.HitTest(p)
	if hit != a.hover {
		a.hover = hit
		return true
	}
	return false
}

// handleKey applies a key press and reports whether a repaint is needed.
func (a *AppState) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == ModePreview {
		return false
	}
	if a.renaming >= 0 {
		a.renameKey(e)
		return true
	}
	for _, sc := range shortcuts {
		for _, k := range sc.keys {
			if k.matches(e) {
				a.runAction(sc.action)
				return true
			}
		}
	}
	if e.Modifiers != 0 {
		return false
	}
	for i, r := range toolKeys {
		if (KeyShortcut{Rune: r}).matches(e) {
			a.editor.SetTool(pnt.Tools()[i])
			return true
		}
	}
	switch e.Rune {
	case '[':
		a.widthIdx = max(a.widthIdx-1, 0)
	case ']':
		a.widthIdx = min(a.widthIdx+1, widthsLen()-1)
	default:
		return false
	}
	a.editor.SetBrushWidth(widthAt(a.widthIdx))
	return true
}

func (a *AppState) renameKey(e key.Event) {
	switch e.Code {
	case key.CodeReturnEnter:
		a.commitRename()
	case key.CodeEscape:
		a.renaming = -1
	case key.CodeDeleteBackspace:
		if r := []rune(a.renameText); len(r) > 0 {
			a.renameText = string(r[:len(r)-1])
		}
	default:
		if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
			a.renameText += string(e.Rune)
		}
	}
}

func (a *AppState) commitRename() {
	i := a.renaming
	a.renaming = -1
	if err := a.panel.Rename(i, strings.TrimSpace(a.renameText)); err != nil {
		a.fail("rename", err)
	}
}

// runAction performs a named shortcut action. The lock is held.
func (a *AppState) runAction(name string) {
	switch name {
	case "undo":
		if !a.editor.Undo() {
			a.setMessage("nothing to undo", false)
		}
	case "redo":
		if !a.editor.Redo() {
			a.setMessage("nothing to redo", false)
		}
	case "save":
		a.save()
	case "open":
		a.open()
	case "export":
		a.export()
	case "import":
		a.importImage()
	case "paste":
		a.paste()
	case "copy":
		a.copyComposite()
	case "clear":
		if !a.editor.Clear() {
			a.setMessage("the active layer is locked or hidden", true)
		}
	case "done":
		a.freezeLocked()
		if a.AutoSavePath != "" {
			a.startSave(a.AutoSavePath)
		}
	}
}

func (a *AppState) dialogDir() string {
	if a.path != "" {
		return filepath.Dir(a.path)
	}
	return a.cfg.ResolvedSaveDir()
}

func (a *AppState) save() {
	path := a.path
	if path == "" {
		path = a.AutoSavePath
	}
	if path == "" {
		p, err := a.dialogs.SaveFile("Save project", "PaintFrame project", a.dialogDir(), strings.TrimPrefix(project.Ext, "."))
		if err != nil {
			if !cancelled(err) {
				a.fail("save", err)
			}
			return
		}
		path = p
	}
	if filepath.Ext(path) == "" {
		path += project.Ext
	}
	a.startSave(path)
}

func (a *AppState) open() {
	path, err := a.dialogs.OpenFile("Open project", "PaintFrame project", a.dialogDir(), strings.TrimPrefix(project.Ext, "."))
	if err != nil {
		if !cancelled(err) {
			a.fail("open", err)
		}
		return
	}
	snap, err := project.Load(path)
	if err != nil {
		a.fail("open", err)
		return
	}
	a.installLocked(snap, path)
	a.notifier.Load(path)
}

func (a *AppState) export() {
	path, err := a.dialogs.SaveFile("Export image", "Images", a.dialogDir(), "png", "jpg", "jpeg", "bmp")
	if err != nil {
		if !cancelled(err) {
			a.fail("export", err)
		}
		return
	}
	if err := project.Export(path, a.editor.Composite()); err != nil {
		a.fail("export", err)
		return
	}
	a.setMessage("exported "+path, false)
	a.notifier.Export(path, nil)
}

func (a *AppState) importImage() {
	path, err := a.dialogs.OpenFile("Import image", "Images", a.dialogDir(), imageExts...)
	if err != nil {
		if !cancelled(err) {
			a.fail("import", err)
		}
		return
	}
	img, err := project.DecodeImage(path)
	if err != nil {
		a.fail("import", err)
		return
	}
	a.editor.ImportImage(layerNameFor(path), img)
	a.setMessage("imported "+filepath.Base(path), false)
}

func layerNameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// paste imports the clipboard image as a new layer. A clipboard holding the
// path of an image file is accepted too.
func (a *AppState) paste() {
	img, err := clipboard.ReadImage()
	name := "Pasted"
	if err != nil {
		text, terr := clipboard.ReadText()
		path := strings.TrimSpace(text)
		if terr != nil || path == "" {
			a.fail("paste", err)
			return
		}
		if _, serr := os.Stat(path); serr != nil {
			a.fail("paste", errors.Join(err, serr))
			return
		}
		if img, err = project.DecodeImage(path); err != nil {
			a.fail("paste", err)
			return
		}
		name = layerNameFor(path)
	}
	a.editor.ImportImage(name, img)
	a.setMessage("pasted new layer", false)
}

func (a *AppState) copyComposite() {
	if err := clipboard.WriteImage(project.Flatten(a.editor.Composite())); err != nil {
		a.fail("copy", err)
		return
	}
	a.setMessage("image copied to clipboard", false)
	a.notifier.Copy("canvas")
}
