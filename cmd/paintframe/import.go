package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/example/paintframe/internal/clipboard"
	"github.com/example/paintframe/internal/project"
)

// readClipboardImage is replaced in tests.
var readClipboardImage = func() (image.Image, error) { return clipboard.ReadImage() }

// importCmd adds an image file or the clipboard image as a new layer.
type importCmd struct {
	file          string
	image         string
	name          string
	fromClipboard bool
	*root
	fs *flag.FlagSet
}

func (c *importCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *importCmd) Template() string {
	return "import.txt"
}

func parseImportCmd(args []string, r *root) (*importCmd, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	c := &importCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "project file to add the layer to")
	fs.StringVar(&c.image, "image", "", "image file to import (png, jpeg, gif, bmp, tiff or webp)")
	fs.StringVar(&c.name, "name", "", "layer name (defaults to the image file name)")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "import the clipboard image")
	fs.BoolVar(&c.fromClipboard, "from-clip", false, "import the clipboard image (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.image == "" && fs.NArg() == 1 {
		c.image = fs.Arg(0)
	}
	if c.image != "" && c.fromClipboard {
		return nil, fmt.Errorf("-image and -from-clipboard cannot be combined")
	}
	if c.image == "" && !c.fromClipboard {
		return nil, &UsageError{of: c}
	}
	if c.file == "" && (r == nil || r.session == nil) {
		return nil, errNoFile
	}
	return c, nil
}

func (c *importCmd) Run() error {
	var (
		img  image.Image
		name = c.name
		err  error
	)
	if c.fromClipboard {
		if img, err = readClipboardImage(); err != nil {
			return fmt.Errorf("read clipboard image: %w", err)
		}
		if name == "" {
			name = "Pasted"
		}
	} else {
		if img, err = project.DecodeImage(c.image); err != nil {
			return err
		}
		if name == "" {
			base := filepath.Base(c.image)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	doc, err := c.root.openDocument(c.file)
	if err != nil {
		return err
	}
	idx := doc.editor.ImportImage(name, img)
	fmt.Fprintf(c.root.errOut(), "imported %q as layer %d\n", name, idx)
	return c.root.commit(doc)
}
