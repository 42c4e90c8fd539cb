package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/paintframe/internal/paint"
	"github.com/example/paintframe/internal/project"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd reads commands from stdin and applies them to one in-memory
// document. Undo and redo span the whole session.
type interactiveCmd struct {
	file   string
	width  int
	height int
	execs  commandList
	stdin  io.Reader
	*root
	fs *flag.FlagSet
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Template() string {
	return "interactive.txt"
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	if r != nil && r.session != nil {
		return nil, fmt.Errorf("already in an interactive session")
	}
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.file, "file", "", "project file to open; created by save when missing")
	fs.IntVar(&i.width, "width", r.cfg().CanvasWidth, "canvas width for a new project")
	fs.IntVar(&i.height, "height", r.cfg().CanvasHeight, "canvas height for a new project")
	fs.Var(&i.execs, "e", "execute a command without reading stdin (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if i.file == "" && fs.NArg() == 1 {
		i.file = fs.Arg(0)
	}
	return i, nil
}

func (i *interactiveCmd) open() (*document, error) {
	if i.file != "" && fileExists(i.file) {
		snap, err := project.Load(i.file)
		if err != nil {
			return nil, err
		}
		i.root.notifyLoad(i.file)
		return &document{editor: i.root.newEditor(snap.Store()), path: i.file}, nil
	}
	store, err := paint.NewStore(i.width, i.height)
	if err != nil {
		return nil, err
	}
	return &document{editor: i.root.newEditor(store), path: i.file}, nil
}

func (i *interactiveCmd) Run() error {
	doc, err := i.open()
	if err != nil {
		return err
	}
	session := i.root.subcommand("")
	session.session = doc
	defer func() {
		if doc.dirty {
			fmt.Fprintln(i.root.errOut(), "warning: unsaved changes discarded")
		}
	}()

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(session, line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	out := i.root.out()
	fmt.Fprintln(out, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(session, scanner.Text())
		if err != nil {
			fmt.Fprintln(i.root.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one session command and reports whether the session
// should end.
func (i *interactiveCmd) executeLine(session *root, line string) (bool, error) {
	args := strings.Fields(strings.TrimSpace(line))
	if len(args) == 0 {
		return false, nil
	}
	doc := session.session
	e := doc.editor
	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(i.root.out(), sessionHelp)
		return false, nil
	case "undo":
		if !e.Undo() {
			return false, fmt.Errorf("nothing to undo")
		}
		doc.dirty = true
	case "redo":
		if !e.Redo() {
			return false, fmt.Errorf("nothing to redo")
		}
		doc.dirty = true
	case "clear":
		if !e.Clear() {
			return false, fmt.Errorf("layer %d is locked or hidden", e.Store().ActiveIndex())
		}
		doc.dirty = true
	case "save":
		path := doc.path
		if len(args) > 1 {
			path = args[1]
		}
		return false, session.saveDocument(doc, path)
	case "history":
		h := e.History()
		fmt.Fprintf(i.root.out(), "%d undo, %d redo (limit %d)\n", h.Len(), h.RedoLen(), h.Limit())
	case "interactive":
		return false, fmt.Errorf("already in an interactive session")
	default:
		if err := session.dispatch(strings.ToLower(args[0]), args[1:]); err != nil {
			return false, err
		}
	}
	return false, nil
}

const sessionHelp = `Session commands:
  undo, redo, clear, history
  save [path]
  info | layer ... | draw ... | resize ... | import ... | export ...
  colors | widths | version
  exit
`
