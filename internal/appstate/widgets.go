package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/paintframe/internal/theme"
)

var toolLabels = []string{"P:Pencil", "L:Line", "R:Rect", "O:Oval", "E:Eraser", "B:Fill", "I:Pick"}

// toolKeys maps the unmodified key to the tool at the same index in
// paint.Tools.
var toolKeys = []rune{'p', 'l', 'r', 'o', 'e', 'b', 'i'}

var layerButtonLabels = []string{"+", "-", "Up", "Down"}

const (
	layerAdd = iota
	layerDelete
	layerUp
	layerDown
)

// KeyShortcut describes a keyboard combination that triggers an action.
// A zero Code matches on Rune alone.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) matches(e key.Event) bool {
	if e.Modifiers != k.Modifiers {
		return false
	}
	if k.Code != 0 && e.Code == k.Code {
		return true
	}
	return k.Rune != 0 && unicode.ToLower(e.Rune) == k.Rune
}

type shortcut struct {
	label  string
	action string
	keys   []KeyShortcut
}

var shortcuts = []shortcut{
	{"^Z:undo", "undo", []KeyShortcut{{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}}},
	{"^Y:redo", "redo", []KeyShortcut{{Rune: 'y', Code: key.CodeY, Modifiers: key.ModControl}}},
	{"^S:save", "save", []KeyShortcut{{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}}},
	{"^O:open", "open", []KeyShortcut{{Rune: 'o', Code: key.CodeO, Modifiers: key.ModControl}}},
	{"^E:export", "export", []KeyShortcut{{Rune: 'e', Code: key.CodeE, Modifiers: key.ModControl}}},
	{"^I:import", "import", []KeyShortcut{{Rune: 'i', Code: key.CodeI, Modifiers: key.ModControl}}},
	{"^V:paste", "paste", []KeyShortcut{{Rune: 'v', Code: key.CodeV, Modifiers: key.ModControl}}},
	{"^C:copy", "copy", []KeyShortcut{{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl}}},
	{"Del:clear", "clear", []KeyShortcut{{Code: key.CodeDeleteForward}}},
	{"Enter:done", "done", []KeyShortcut{{Code: key.CodeReturnEnter}}},
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

var (
	basicFace   font.Face = basicfont.Face7x13
	messageFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawRect(dst draw.Image, r image.Rectangle, c color.Color, thick int) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawLabel(dst draw.Image, x, baseline int, s string, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicFace, Dot: fixed.P(x, baseline)}
	d.DrawString(s)
}

// drawButton paints a labelled button. Labels are vertically centred on the
// 7x13 face.
func drawButton(dst draw.Image, r image.Rectangle, label string, state ButtonState, th *theme.Theme) {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg, fg = th.ButtonBackgroundPress, th.ButtonTextPress
	}
	fill(dst, r, bg)
	drawRect(dst, r, th.ButtonBorder, 1)
	drawLabel(dst, r.Min.X+4, r.Min.Y+(r.Dy()+10)/2, label, fg)
}

func buttonState(selected, hovered bool) ButtonState {
	switch {
	case selected:
		return StatePressed
	case hovered:
		return StateHover
	}
	return StateDefault
}
