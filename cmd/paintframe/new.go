package main

import (
	"flag"
	"fmt"

	"github.com/example/paintframe/internal/paint"
)

// newCmd creates a blank project file.
type newCmd struct {
	output string
	width  int
	height int
	force  bool
	*root
	fs *flag.FlagSet
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func (n *newCmd) Template() string {
	return "new.txt"
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	n := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(n)
	fs.StringVar(&n.output, "output", "", "project file to create")
	fs.IntVar(&n.width, "width", r.cfg().CanvasWidth, "canvas width in pixels")
	fs.IntVar(&n.height, "height", r.cfg().CanvasHeight, "canvas height in pixels")
	fs.BoolVar(&n.force, "force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if n.output == "" && fs.NArg() == 1 {
		n.output = fs.Arg(0)
	}
	if n.output == "" {
		return nil, &UsageError{of: n}
	}
	if !paint.ValidSize(n.width, n.height) {
		return nil, fmt.Errorf("%w: %dx%d", paint.ErrInvalidSize, n.width, n.height)
	}
	return n, nil
}

func (n *newCmd) Run() error {
	if !n.force && fileExists(n.output) {
		return fmt.Errorf("%s already exists (use -force to overwrite)", n.output)
	}
	store, err := paint.NewStore(n.width, n.height)
	if err != nil {
		return err
	}
	return n.root.saveDocument(&document{editor: n.root.newEditor(store)}, n.output)
}
