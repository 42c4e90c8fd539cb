package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// layerCmd edits the layer list of a project.
type layerCmd struct {
	file string
	op   string
	args []string
	*root
	fs *flag.FlagSet
}

func (l *layerCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func (l *layerCmd) Template() string {
	return "layer.txt"
}

// layerOps lists each operation with its positional argument count. A
// negative count is a minimum.
var layerOps = map[string]int{
	"add":    0,
	"delete": 0,
	"move":   2,
	"rename": -2,
	"show":   1,
	"hide":   1,
	"lock":   1,
	"unlock": 1,
	"select": 1,
}

func parseLayerCmd(args []string, r *root) (*layerCmd, error) {
	fs := flag.NewFlagSet("layer", flag.ContinueOnError)
	l := &layerCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	fs.StringVar(&l.file, "file", "", "project file to modify")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: l}
	}
	l.op = strings.ToLower(fs.Arg(0))
	l.args = fs.Args()[1:]
	want, ok := layerOps[l.op]
	if !ok {
		return nil, fmt.Errorf("unknown layer operation %q", l.op)
	}
	switch {
	case l.op == "add":
	case want < 0 && len(l.args) < -want:
		return nil, fmt.Errorf("layer %s requires at least %d arguments", l.op, -want)
	case want >= 0 && len(l.args) != want:
		return nil, fmt.Errorf("layer %s requires %d arguments", l.op, want)
	}
	if l.file == "" && (r == nil || r.session == nil) {
		return nil, errNoFile
	}
	return l, nil
}

func (l *layerCmd) index(i int) (int, error) {
	v, err := strconv.Atoi(l.args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid layer index %q", l.args[i])
	}
	return v, nil
}

func (l *layerCmd) Run() error {
	doc, err := l.root.openDocument(l.file)
	if err != nil {
		return err
	}
	e := doc.editor
	switch l.op {
	case "add":
		idx := e.AddLayer(strings.Join(l.args, " "))
		fmt.Fprintf(l.root.errOut(), "added layer %d %q\n", idx, e.Store().Layer(idx).Name)
	case "delete":
		if !e.DeleteLayer() {
			return fmt.Errorf("the last layer cannot be deleted")
		}
	case "move":
		from, err := l.index(0)
		if err != nil {
			return err
		}
		to, err := l.index(1)
		if err != nil {
			return err
		}
		if err := e.MoveLayer(from, to); err != nil {
			return err
		}
	case "rename":
		idx, err := l.index(0)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(strings.Join(l.args[1:], " "))
		if name == "" {
			return fmt.Errorf("layer name cannot be empty")
		}
		if err := e.RenameLayer(idx, name); err != nil {
			return err
		}
	default:
		idx, err := l.index(0)
		if err != nil {
			return err
		}
		switch l.op {
		case "show", "hide":
			err = e.SetVisible(idx, l.op == "show")
		case "lock", "unlock":
			err = e.SetLocked(idx, l.op == "lock")
		case "select":
			err = e.SelectLayer(idx)
		}
		if err != nil {
			return err
		}
	}
	return l.root.commit(doc)
}
