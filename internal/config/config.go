package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save    bool
	Load    bool
	Export  bool
	Copy    bool
	Failure bool
}

// Config holds the application configuration.
type Config struct {
	Theme         string
	SaveDir       string
	BrushColor    color.RGBA
	BrushWidth    int
	EraserColor   color.RGBA
	CanvasWidth   int
	CanvasHeight  int
	HistoryLimit  int
	FillTolerance int
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// Default canvas size for new documents.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:         "", // Empty allows fallback to Env/Default
		BrushColor:    color.RGBA{A: 255},
		BrushWidth:    paint.DefaultBrushWidth,
		EraserColor:   color.RGBA{255, 255, 255, 255},
		CanvasWidth:   DefaultCanvasWidth,
		CanvasHeight:  DefaultCanvasHeight,
		HistoryLimit:  paint.DefaultHistoryLimit,
		FillTolerance: paint.DefaultFillTolerance,
		Notify: Notify{
			Failure: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolvedSaveDir returns SaveDir with a leading ~ expanded.
func (c *Config) ResolvedSaveDir() string {
	if c.SaveDir == "" {
		return ""
	}
	dir, err := homedir.Expand(c.SaveDir)
	if err != nil {
		return c.SaveDir
	}
	return dir
}

// EditorOptions converts the drawing settings into editor options.
func (c *Config) EditorOptions() []paint.EditorOption {
	return []paint.EditorOption{
		paint.WithBrush(color.NRGBA(c.BrushColor), c.BrushWidth),
		paint.WithEraserColor(color.NRGBA(c.EraserColor)),
		paint.WithHistoryLimit(c.HistoryLimit),
		paint.WithFillTolerance(c.FillTolerance),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "brush_color = %s\n", theme.FormatColor(c.BrushColor))
	fmt.Fprintf(&sb, "brush_width = %d\n", c.BrushWidth)
	fmt.Fprintf(&sb, "eraser_color = %s\n", theme.FormatColor(c.EraserColor))
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "fill_tolerance = %d\n", c.FillTolerance)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "failure = %v\n", c.Notify.Failure)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
