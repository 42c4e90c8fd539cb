package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/paintframe/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when a project is written to disk.
	EventSave Event = "save"
	// EventLoad emits a notification when a project is opened.
	EventLoad Event = "load"
	// EventExport emits a notification when a flattened image is written.
	EventExport Event = "export"
	// EventCopy emits a notification when the canvas is copied to the clipboard.
	EventCopy Event = "copy"
	// EventFailure emits a notification when a file or clipboard operation fails.
	EventFailure Event = "failure"
)

// Events lists every event in configuration order.
func Events() []Event {
	return []Event{EventSave, EventLoad, EventExport, EventCopy, EventFailure}
}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "PaintFrame",
		Events: map[Event]EventPreference{
			EventSave:    {Template: "Saved %s"},
			EventLoad:    {Template: "Opened %s"},
			EventExport:  {Template: "Exported %s"},
			EventCopy:    {Template: "Copied %s to clipboard"},
			EventFailure: {Template: "%s"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PAINTFRAME_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events() {
		key := "PAINTFRAME_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	return prefs
}

// Sender delivers a formatted notification. platform.Notify is the default.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// SetSender replaces the delivery function.
func (n *Notifier) SetSender(s Sender) {
	if n != nil && s != nil {
		n.send = s
	}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event produces notifications.
func (n *Notifier) Enabled(event Event) bool { return n.enabledFor(event) }

// Save sends a save notification including the written filename.
func (n *Notifier) Save(path string) {
	n.dispatch(EventSave, absPath(path), platform.Options{})
}

// Load sends a notification after a project was opened.
func (n *Notifier) Load(path string) {
	n.dispatch(EventLoad, absPath(path), platform.Options{})
}

// Export sends an export notification. The exported file doubles as the icon
// when preview is nil; otherwise preview is written to a temporary PNG.
func (n *Notifier) Export(path string, preview image.Image) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := absPath(path)
	opts := platform.Options{}
	if preview != nil {
		if icon, cleanup, err := createPreview(preview); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = icon
		}
	} else if _, err := os.Stat(detail); err == nil {
		opts.IconPath = detail
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "canvas"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Failure reports a failed operation.
func (n *Notifier) Failure(op string, err error) {
	if err == nil {
		return
	}
	n.dispatch(EventFailure, fmt.Sprintf("%s failed: %v", op, err), platform.Options{Urgent: true})
}

func absPath(path string) string {
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(detail); err == nil && detail != "" {
		return abs
	}
	return detail
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.AppName = n.prefs.Title
	send := n.send
	if send == nil {
		send = platform.Notify
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "paintframe-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
