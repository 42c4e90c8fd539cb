package main

import (
	"flag"
	"fmt"

	"github.com/example/paintframe/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.root.out(), c.root.cfg().String())
		return nil
	case "path":
		loader := config.NewLoader(version, configPathOverride)
		path := loader.GetConfigPath()
		if path == "" {
			path = loader.UserConfigPath() + " (not created)"
		}
		fmt.Fprintln(c.root.out(), path)
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave() error {
	loader := config.NewLoader(version, configPathOverride)
	path, err := loader.Save(c.root.cfg())
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	fmt.Fprintf(c.root.errOut(), "Configuration saved to %s\n", path)
	return nil
}
