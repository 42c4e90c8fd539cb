package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/example/paintframe/internal/project"
)

const watchDebounce = 200 * time.Millisecond

// watchCmd re-exports a project whenever the project file changes.
type watchCmd struct {
	file   string
	output string
	*root
	fs *flag.FlagSet
}

func (w *watchCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

func (w *watchCmd) Template() string {
	return "watch.txt"
}

func parseWatchCmd(args []string, r *root) (*watchCmd, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	w := &watchCmd{root: r, fs: fs}
	fs.Usage = usageFunc(w)
	fs.StringVar(&w.file, "file", "", "project file to watch")
	fs.StringVar(&w.output, "output", "", "image file to write on every change")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if w.file == "" || w.output == "" {
		return nil, &UsageError{of: w}
	}
	if _, err := project.FormatForPath(w.output); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *watchCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return w.watch(ctx, nil)
}

// watch exports once, then again after each burst of changes to the project
// file until ctx ends. exported, when set, receives every written path.
func (w *watchCmd) watch(ctx context.Context, exported chan<- string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}()
	// Editors and Save replace the file by renaming, so watch the directory.
	dir := filepath.Dir(w.file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(w.file)

	export := func() {
		if err := w.export(); err != nil {
			log.Printf("watch: %v", err)
			return
		}
		if exported != nil {
			select {
			case exported <- w.output:
			case <-ctx.Done():
			}
		}
	}
	if fileExists(w.file) {
		export()
	}
	fmt.Fprintf(w.root.errOut(), "watching %s\n", w.file)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(watchDebounce)
				continue
			}
			log.Printf("watch: %v", err)
		case <-timer.C:
			export()
		}
	}
}

func (w *watchCmd) export() error {
	snap, err := project.Load(w.file)
	if err != nil {
		return err
	}
	return exportImage(w.root, w.output, w.root.newEditor(snap.Store()).Composite())
}
