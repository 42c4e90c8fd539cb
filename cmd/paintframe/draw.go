package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/theme"
)

// drawCmd replays a pointer gesture through the editor: a press at the first
// point, a move to every following point and a release at the last.
type drawCmd struct {
	file      string
	toolName  string
	tool      paint.Tool
	colorSpec string
	color     color.NRGBA
	hasColor  bool
	width     int
	layer     int
	points    []image.Point
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "project file to draw on")
	fs.StringVar(&d.toolName, "tool", "pencil", "tool: pencil, line, rect, oval, eraser, bucket or eyedropper")
	fs.StringVar(&d.colorSpec, "color", "", "brush color name or hex value (defaults to the configured brush)")
	fs.IntVar(&d.width, "width", 0, "brush width in pixels (defaults to the configured brush)")
	fs.IntVar(&d.layer, "layer", -1, "layer index to draw on (defaults to the top layer)")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	positionals = append(positionals, fs.Args()...)
	if len(positionals) < 2 {
		return nil, &UsageError{of: d}
	}
	if len(positionals)%2 != 0 {
		return nil, fmt.Errorf("points need an x and a y coordinate")
	}
	coords, err := expectInts(positionals, len(positionals), "draw")
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(coords); i += 2 {
		d.points = append(d.points, image.Pt(coords[i], coords[i+1]))
	}
	if d.tool, err = paint.ParseTool(d.toolName); err != nil {
		return nil, err
	}
	if d.colorSpec != "" {
		if d.color, err = parseColor(d.colorSpec); err != nil {
			return nil, err
		}
		d.hasColor = true
	}
	if d.width < 0 {
		return nil, fmt.Errorf("width must be positive")
	}
	if d.file == "" && (r == nil || r.session == nil) {
		return nil, errNoFile
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	doc, err := d.root.openDocument(d.file)
	if err != nil {
		return err
	}
	e := doc.editor
	if d.layer >= 0 {
		if err := e.SelectLayer(d.layer); err != nil {
			return err
		}
	}
	if !e.Store().Drawable() {
		return fmt.Errorf("layer %d is locked or hidden", e.Store().ActiveIndex())
	}
	e.SetTool(d.tool)
	if d.hasColor {
		e.SetBrushColor(d.color)
	}
	if d.width > 0 {
		e.SetBrushWidth(d.width)
	}

	before := e.History().Len()
	e.PointerDown(d.points[0])
	for _, p := range d.points[1:] {
		e.PointerMove(p)
	}
	e.PointerUp(d.points[len(d.points)-1])

	if d.tool == paint.Eyedropper {
		c := e.BrushColor()
		fmt.Fprintln(d.root.out(), theme.FormatColor(color.RGBA{c.R, c.G, c.B, c.A}))
		return nil
	}
	if e.History().Len() == before && d.tool == paint.Bucket {
		fmt.Fprintln(d.root.errOut(), "fill changed nothing")
		return nil
	}
	return d.root.commit(doc)
}

// splitDrawArgs separates flags from coordinates so that negative
// coordinates are not mistaken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags, positionals []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(a, "-") || isInt(a) {
			positionals = append(positionals, a)
			continue
		}
		flags = append(flags, a)
		if strings.Contains(a, "=") {
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", a)
		}
		i++
		flags = append(flags, args[i])
	}
	return flags, positionals, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
