package appstate

import (
	"errors"

	"github.com/sqweek/dialog"
)

// ErrCancelled is returned by Dialogs when the user dismisses a dialog.
var ErrCancelled = dialog.ErrCancelled

// Dialogs asks the user for file paths.
type Dialogs interface {
	OpenFile(title, filterDesc, dir string, exts ...string) (string, error)
	SaveFile(title, filterDesc, dir string, exts ...string) (string, error)
}

type nativeDialogs struct{}

func (nativeDialogs) builder(title, filterDesc, dir string, exts []string) *dialog.FileBuilder {
	b := dialog.File().Title(title).Filter(filterDesc, exts...)
	if dir != "" {
		b = b.SetStartDir(dir)
	}
	return b
}

func (d nativeDialogs) OpenFile(title, filterDesc, dir string, exts ...string) (string, error) {
	return d.builder(title, filterDesc, dir, exts).Load()
}

func (d nativeDialogs) SaveFile(title, filterDesc, dir string, exts ...string) (string, error) {
	return d.builder(title, filterDesc, dir, exts).Save()
}

func cancelled(err error) bool { return errors.Is(err, ErrCancelled) }
