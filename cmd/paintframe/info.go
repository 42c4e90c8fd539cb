package main

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/example/paintframe/internal/project"
)

// infoCmd prints the layer table of a project.
type infoCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (i *infoCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *infoCmd) Template() string {
	return "info.txt"
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	i := &infoCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.file, "file", "", "project file to describe")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if i.file == "" && fs.NArg() == 1 {
		i.file = fs.Arg(0)
	}
	if i.file == "" && (r == nil || r.session == nil) {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *infoCmd) Run() error {
	var md project.Metadata
	active := -1
	if i.root != nil && i.root.session != nil && (i.file == "" || i.file == i.root.session.path) {
		e := i.root.session.editor
		md = project.MetadataOf(e.Snapshot())
		active = e.Store().ActiveIndex()
	} else {
		var err error
		if md, err = project.Inspect(i.file); err != nil {
			return err
		}
		active = len(md.Layers) - 1
	}
	out := i.root.out()
	fmt.Fprintf(out, "version %s, canvas %dx%d, %d layers\n", md.Version, md.CanvasWidth, md.CanvasHeight, len(md.Layers))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tVISIBLE\tLOCKED\tASSET")
	for idx := len(md.Layers) - 1; idx >= 0; idx-- {
		l := md.Layers[idx]
		mark := " "
		if idx == active {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s%d\t%s\t%t\t%t\t%s\n", mark, idx, l.Name, l.Visible, l.Locked, l.Filename)
	}
	return tw.Flush()
}
