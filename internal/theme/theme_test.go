package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# comment
Name: custom
Background: #102030
panelactive: #11223344
StatusError: crimson
Unknown: #FFFFFF
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("Background = %v", th.Background)
	}
	if th.PanelActive != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("PanelActive = %v", th.PanelActive)
	}
	if th.StatusError != (color.RGBA{220, 20, 60, 255}) {
		t.Errorf("StatusError = %v", th.StatusError)
	}
	if th.Foreground != Default().Foreground {
		t.Errorf("missing key did not keep default")
	}
}

func TestParseInvalidColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #12")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse(strings.NewReader("Background: notacolour")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {250, 128, 0, 7}} {
		got, err := ParseColor(FormatColor(c))
		if err != nil || got != c {
			t.Errorf("round trip %v -> %v, %v", c, got, err)
		}
	}
}

func TestBuiltinThemesLoad(t *testing.T) {
	names := Builtin()
	if len(names) < 4 {
		t.Fatalf("builtin themes = %v", names)
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("Load(%q): %v", n, err)
		}
		if th.Name != n {
			t.Errorf("Load(%q) name = %q", n, th.Name)
		}
	}
	dark, _ := l.Load("dark")
	if dark.Background == Default().Background {
		t.Error("dark theme kept the light background")
	}
}

func TestLoaderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: mine\nCanvasBorder: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("mine")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.CanvasBorder != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("CanvasBorder = %v", th.CanvasBorder)
	}
	if _, err := l.Load("absent"); err == nil {
		t.Fatal("expected not found")
	}
}

func TestFieldsCoversColours(t *testing.T) {
	fields := Fields(Default())
	if len(fields) == 0 || fields[0].Name != "Background" {
		t.Fatalf("fields = %+v", fields)
	}
	for _, f := range fields {
		if f.Name == "Name" {
			t.Fatal("Name is not a colour")
		}
	}
}
