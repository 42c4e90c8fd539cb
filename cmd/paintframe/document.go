package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/paintframe/internal/appstate"
	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
)

var errNoFile = errors.New("a project file is required (-file)")

// document is a project opened by a command. Inside an interactive session
// every command shares one document and nothing is written until "save".
type document struct {
	editor *paint.Editor
	path   string
	dirty  bool
}

func (r *root) newEditor(store *paint.Store) *paint.Editor {
	return paint.NewEditor(store, r.cfg().EditorOptions()...)
}

// openDocument loads the project at path, or returns the session document
// when one is active and path is empty or names it.
func (r *root) openDocument(path string) (*document, error) {
	if r != nil && r.session != nil && (path == "" || path == r.session.path) {
		return r.session, nil
	}
	if path == "" {
		return nil, errNoFile
	}
	snap, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	e := r.newEditor(snap.Store())
	return &document{editor: e, path: path}, nil
}

// commit writes doc back to its file. Session documents are only marked
// dirty.
func (r *root) commit(doc *document) error {
	if r != nil && doc == r.session {
		doc.dirty = true
		return nil
	}
	return r.saveDocument(doc, doc.path)
}

func (r *root) saveDocument(doc *document, path string) error {
	if path == "" {
		return errNoFile
	}
	if err := project.Save(path, doc.editor.Snapshot()); err != nil {
		r.notifyFailure("save", err)
		return err
	}
	doc.path = path
	doc.dirty = false
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(r.errOut(), "saved %s\n", saved)
	r.notifySave(saved)
	return nil
}

func parseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.NRGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	for _, entry := range appstate.PaletteColors() {
		if strings.EqualFold(entry.Name, s) {
			return entry.Color, nil
		}
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		var vals [4]uint8
		vals[3] = 255
		for i := 0; i*2+1 < len(name)-1; i++ {
			v, err := strconv.ParseUint(name[1+i*2:3+i*2], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
			}
			vals[i] = uint8(v)
		}
		return color.NRGBA{vals[0], vals[1], vals[2], vals[3]}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

func expectInts(args []string, n int, what string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", what, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
