package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/example/paintframe/internal/appstate"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	defaultIdx := appstate.EnsurePaletteColor(color.NRGBA(c.root.cfg().BrushColor), "")
	palette := appstate.PaletteColors()
	out := c.root.out()
	fmt.Fprintln(out, "available palette colors (* marks the default color):")
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		hex := fmt.Sprintf("#%02X%02X%02X", entry.Color.R, entry.Color.G, entry.Color.B)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(out, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ContinueOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	defaultIdx := appstate.EnsureWidth(c.root.cfg().BrushWidth)
	out := c.root.out()
	fmt.Fprintln(out, "available stroke widths (* marks the default width):")
	for idx, width := range appstate.WidthOptions() {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %3dpx\n", marker, width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *widthsCmd) Template() string {
	return "widths.txt"
}
