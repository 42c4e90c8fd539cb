package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/paintings
brush_color = #FF000080
brush_width = 7
eraser_color = ivory
canvas_width = 320
canvas_height = 240
history_limit = 5
fill_tolerance = 0

[notify]
save = true
load = false
copy = true
failure = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/paintings" {
		t.Errorf("Expected save_dir '/tmp/paintings', got '%s'", cfg.SaveDir)
	}
	if cfg.BrushColor != (color.RGBA{255, 0, 0, 0x80}) {
		t.Errorf("Unexpected brush color: %+v", cfg.BrushColor)
	}
	if cfg.BrushWidth != 7 || cfg.CanvasWidth != 320 || cfg.CanvasHeight != 240 {
		t.Errorf("Unexpected sizes: %+v", cfg)
	}
	if cfg.EraserColor != (color.RGBA{255, 255, 240, 255}) {
		t.Errorf("Unexpected eraser color: %+v", cfg.EraserColor)
	}
	if cfg.HistoryLimit != 5 || cfg.FillTolerance != 0 {
		t.Errorf("Unexpected history/tolerance: %d %d", cfg.HistoryLimit, cfg.FillTolerance)
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Load {
		t.Error("Expected notify.load to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Notify.Failure {
		t.Error("Expected notify.failure to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CanvasWidth != DefaultCanvasWidth || cfg.HistoryLimit != 20 || cfg.FillTolerance != 50 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if !cfg.Notify.Failure || cfg.Notify.Save {
		t.Errorf("Unexpected notify defaults: %+v", cfg.Notify)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"brush_width = wide",
		"canvas_width = 0",
		"fill_tolerance = -1",
		"brush_color = #XYZ",
		"[notify]\nsave = sometimes",
		"[theme.x]\nBackground = #1",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = ~/paintings
brush_color = #102030
brush_width = 4

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.BrushColor != cfg2.BrushColor || cfg.BrushWidth != cfg2.BrushWidth {
		t.Errorf("Brush mismatch: %v/%d vs %v/%d", cfg.BrushColor, cfg.BrushWidth, cfg2.BrushColor, cfg2.BrushWidth)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestResolvedSaveDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := New()
	if cfg.ResolvedSaveDir() != "" {
		t.Error("empty save_dir should stay empty")
	}
	cfg.SaveDir = "~/art"
	if got, want := cfg.ResolvedSaveDir(), filepath.Join(home, "art"); got != want {
		t.Errorf("ResolvedSaveDir = %q, want %q", got, want)
	}
	cfg.SaveDir = "/abs/path"
	if got := cfg.ResolvedSaveDir(); got != "/abs/path" {
		t.Errorf("ResolvedSaveDir = %q", got)
	}
}

func TestLoaderLookupOrder(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	wd := t.TempDir()
	t.Chdir(wd)

	l := NewLoader("1.0.0", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("unexpected config path %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.CanvasWidth != DefaultCanvasWidth {
		t.Fatalf("Load defaults: %v %+v", err, cfg)
	}

	saved := New()
	saved.BrushWidth = 9
	path, err := l.Save(saved)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(xdg, "paintframe", "config.rc") {
		t.Fatalf("saved to %q", path)
	}
	cfg, err = l.Load()
	if err != nil || cfg.BrushWidth != 9 {
		t.Fatalf("Load saved: %v %+v", err, cfg)
	}

	if err := os.WriteFile(filepath.Join(wd, ".paintframerc"), []byte("brush_width = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, _ := l.Load(); cfg.BrushWidth != 9 {
		t.Errorf("release build read the dev rc file")
	}
	dev := NewLoader("dev", "")
	if cfg, _ := dev.Load(); cfg.BrushWidth != 3 {
		t.Errorf("dev build ignored .paintframerc")
	}

	override := filepath.Join(t.TempDir(), "override.rc")
	if err := os.WriteFile(override, []byte("brush_width = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, _ := NewLoader("dev", override).Load(); cfg.BrushWidth != 12 {
		t.Errorf("override path not preferred")
	}
}
