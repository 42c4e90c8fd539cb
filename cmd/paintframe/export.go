package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"

	"github.com/example/paintframe/internal/clipboard"
	"github.com/example/paintframe/internal/project"
)

// writeClipboardImage is replaced in tests.
var writeClipboardImage = func(img image.Image) error { return clipboard.WriteImage(img) }

// exportCmd flattens a project to a single image.
type exportCmd struct {
	file        string
	output      string
	toClipboard bool
	*root
	fs *flag.FlagSet
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *exportCmd) Template() string {
	return "export.txt"
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "project file to export")
	fs.StringVar(&c.output, "output", "", "image file to write (.png, .jpg, .jpeg or .bmp)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the flattened image to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the flattened image to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" && !c.toClipboard {
		return nil, &UsageError{of: c}
	}
	if c.output != "" {
		if _, err := project.FormatForPath(c.output); err != nil {
			return nil, err
		}
	}
	if c.file == "" && (r == nil || r.session == nil) {
		return nil, errNoFile
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	doc, err := c.root.openDocument(c.file)
	if err != nil {
		return err
	}
	comp := doc.editor.Composite()
	if c.output != "" {
		if err := exportImage(c.root, c.output, comp); err != nil {
			return err
		}
	}
	if c.toClipboard {
		if err := writeClipboardImage(project.Flatten(comp)); err != nil {
			c.root.notifyFailure("copy", err)
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(doc.path)
		if doc.path == "" {
			detail = "canvas"
		}
		fmt.Fprintf(c.root.errOut(), "copied %s to clipboard\n", detail)
		c.root.notifyCopy(detail)
	}
	return nil
}

func exportImage(r *root, path string, img image.Image) error {
	if err := project.Export(path, img); err != nil {
		r.notifyFailure("export", err)
		return err
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(r.errOut(), "exported %s\n", saved)
	r.notifyExport(saved, nil)
	return nil
}
