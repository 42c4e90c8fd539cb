package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/paintframe/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(n *Notifier) *[]sent {
	var got []sent
	n.SetSender(func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	})
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Save("a.pproj")
	n.Copy("")
	n.Failure("save", errors.New("disk full"))
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications, want 0", len(*got))
	}
}

func TestEnabledEvents(t *testing.T) {
	n := New(DefaultPreferences())
	for _, e := range Events() {
		n.Enable(e, true)
	}
	got := recorder(n)

	n.Save("art.pproj")
	n.Copy("")
	n.Failure("save", errors.New("disk full"))
	n.Failure("noop", nil)

	if len(*got) != 3 {
		t.Fatalf("sent %d notifications, want 3", len(*got))
	}
	abs, _ := filepath.Abs("art.pproj")
	if (*got)[0].body != "Saved "+abs {
		t.Errorf("save body = %q", (*got)[0].body)
	}
	if (*got)[0].opts.AppName != "PaintFrame" || (*got)[0].title != "PaintFrame" {
		t.Errorf("unexpected title/app %+v", (*got)[0])
	}
	if (*got)[1].body != "Copied canvas to clipboard" {
		t.Errorf("copy body = %q", (*got)[1].body)
	}
	if !strings.Contains((*got)[2].body, "save failed: disk full") || !(*got)[2].opts.Urgent {
		t.Errorf("failure = %+v", (*got)[2])
	}
}

func TestExportPreviewIcon(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	got := recorder(n)

	n.Export(filepath.Join(t.TempDir(), "out.png"), image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if !s.iconExisted {
		t.Fatal("preview icon was not written before sending")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatal("preview icon was not cleaned up")
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PAINTFRAME_NOTIFY_TITLE", "Notes")
	t.Setenv("PAINTFRAME_NOTIFY_LOAD_TEXT", "Restored %s")
	prefs := LoadPreferences()
	if prefs.Title != "Notes" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventLoad].Template != "Restored %s" {
		t.Errorf("load template = %q", prefs.Events[EventLoad].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Errorf("save template changed: %q", prefs.Events[EventSave].Template)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("x")
	if n.Enabled(EventSave) {
		t.Fatal("nil notifier enabled")
	}
}
