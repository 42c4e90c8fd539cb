package main

import (
	"flag"
	"fmt"

	"github.com/example/paintframe/internal/paint"
)

// resizeCmd changes the canvas size of a project.
type resizeCmd struct {
	file   string
	width  int
	height int
	scale  bool
	*root
	fs *flag.FlagSet
}

func (c *resizeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *resizeCmd) Template() string {
	return "resize.txt"
}

func parseResizeCmd(args []string, r *root) (*resizeCmd, error) {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	c := &resizeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "project file to resize")
	fs.IntVar(&c.width, "width", 0, "new canvas width in pixels")
	fs.IntVar(&c.height, "height", 0, "new canvas height in pixels")
	fs.BoolVar(&c.scale, "scale", false, "resample layers instead of cropping or padding them")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width == 0 && c.height == 0 {
		return nil, &UsageError{of: c}
	}
	if !paint.ValidSize(c.width, c.height) {
		return nil, fmt.Errorf("%w: %dx%d", paint.ErrInvalidSize, c.width, c.height)
	}
	if c.file == "" && (r == nil || r.session == nil) {
		return nil, errNoFile
	}
	return c, nil
}

func (c *resizeCmd) Run() error {
	doc, err := c.root.openDocument(c.file)
	if err != nil {
		return err
	}
	mode := paint.ResizeCrop
	if c.scale {
		mode = paint.ResizeScale
	}
	if err := doc.editor.ResizeCanvas(c.width, c.height, mode); err != nil {
		return err
	}
	fmt.Fprintf(c.root.errOut(), "resized to %dx%d (%s)\n", c.width, c.height, mode)
	return c.root.commit(doc)
}
