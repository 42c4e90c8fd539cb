package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/paintframe/internal/config"
	"github.com/example/paintframe/internal/notify"
	"github.com/example/paintframe/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	session      *document
	notifier     *notify.Notifier
	config       *config.Config
	saveAlerts   bool
	loadAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	if r == nil {
		return "paintframe"
	}
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:      program,
		session:      r.session,
		notifier:     r.notifier,
		config:       r.config,
		saveAlerts:   r.saveAlerts,
		loadAlerts:   r.loadAlerts,
		exportAlerts: r.exportAlerts,
		copyAlerts:   r.copyAlerts,
		themeName:    r.themeName,
		activeTheme:  r.activeTheme,
		stdout:       r.stdout,
		stderr:       r.stderr,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("paintframe", flag.ExitOnError),
		program:  "paintframe",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a project")
	r.fs.BoolVar(&r.loadAlerts, "notify-load", cfg.Notify.Load, "show a desktop notification after opening a project")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Builtin(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventLoad, r.loadAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventFailure, r.config.Notify.Failure)
	}
	r.activeTheme = r.resolveTheme()
	return r.dispatch(r.fs.Arg(0), r.fs.Args()[1:])
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the config, falling back to the default.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PAINTFRAME_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) dispatch(name string, args []string) error {
	var (
		cmd runnable
		err error
	)
	switch name {
	case "new":
		cmd, err = parseNewCmd(args, r)
	case "edit":
		cmd, err = parseEditCmd(args, r)
	case "info":
		cmd, err = parseInfoCmd(args, r)
	case "layer":
		cmd, err = parseLayerCmd(args, r)
	case "draw":
		cmd, err = parseDrawCmd(args, r)
	case "resize":
		cmd, err = parseResizeCmd(args, r)
	case "import":
		cmd, err = parseImportCmd(args, r)
	case "export":
		cmd, err = parseExportCmd(args, r)
	case "watch":
		cmd, err = parseWatchCmd(args, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(args, r)
	case "colors":
		cmd, err = parseColorsCmd(args, r)
	case "widths":
		cmd, err = parseWidthsCmd(args, r)
	case "config":
		cmd, err = parseConfigCmd(args, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r == nil || r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyLoad(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Load(path)
}

func (r *root) notifyExport(path string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path, img)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyFailure(op string, err error) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Failure(op, err)
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}
