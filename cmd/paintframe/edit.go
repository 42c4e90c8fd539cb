package main

import (
	"flag"
	"fmt"

	"github.com/example/paintframe/internal/appstate"
	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
)

// runWidget starts the window. Tests replace it.
var runWidget = func(st *appstate.AppState) { st.Run() }

// editCmd opens the paint widget on a project.
type editCmd struct {
	file    string
	width   int
	height  int
	preview bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func (e *editCmd) Template() string {
	return "edit.txt"
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "project file to edit; created on finish when missing")
	fs.IntVar(&e.width, "width", r.cfg().CanvasWidth, "canvas width for a new project")
	fs.IntVar(&e.height, "height", r.cfg().CanvasHeight, "canvas height for a new project")
	fs.BoolVar(&e.preview, "preview", false, "open in preview mode; double-click to start editing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" && fs.NArg() == 1 {
		e.file = fs.Arg(0)
	}
	if !paint.ValidSize(e.width, e.height) {
		return nil, fmt.Errorf("%w: %dx%d", paint.ErrInvalidSize, e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) state() (*appstate.AppState, error) {
	var editor *paint.Editor
	if e.file != "" && fileExists(e.file) {
		snap, err := project.Load(e.file)
		if err != nil {
			return nil, err
		}
		editor = e.root.newEditor(snap.Store())
	} else {
		store, err := paint.NewStore(e.width, e.height)
		if err != nil {
			return nil, err
		}
		editor = e.root.newEditor(store)
	}
	opts := []appstate.Option{
		appstate.WithEditor(editor),
		appstate.WithConfig(e.root.cfg()),
		appstate.WithAutoSavePath(e.file),
		appstate.WithNotifier(e.root.notifier),
	}
	if e.root.activeTheme != nil {
		opts = append(opts, appstate.WithTheme(e.root.activeTheme))
	}
	if e.preview {
		opts = append(opts, appstate.WithMode(appstate.ModePreview))
	}
	return appstate.New(opts...), nil
}

func (e *editCmd) Run() error {
	st, err := e.state()
	if err != nil {
		return err
	}
	runWidget(st)
	if !st.Editing() {
		return nil
	}
	return st.FinishEditing()
}
