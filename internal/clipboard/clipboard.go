// Package clipboard moves canvas images and text between the editor and the
// desktop clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"slices"
	"sync"

	"github.com/example/paintframe/internal/project"
)

var (
	ErrNoDisplay   = errors.New("clipboard: initialization requires DISPLAY or WAYLAND_DISPLAY")
	ErrUnsupported = errors.New("clipboard: not supported on this platform")
	ErrEmpty       = errors.New("clipboard: no matching data")
)

// Kind selects the clipboard target.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// targets lists the selection target names that carry each kind, most
// preferred first. Backends that speak the X11 selection protocol offer and
// request exactly these.
var targets = map[Kind][]string{
	KindText:  {"UTF8_STRING", "text/plain;charset=utf-8", "STRING"},
	KindImage: {"image/png"},
}

// kindOf maps a selection target name to the kind it carries.
func kindOf(target string) (Kind, bool) {
	for k, names := range targets {
		if slices.Contains(names, target) {
			return k, true
		}
	}
	return 0, false
}

// held is the data this process publishes while it owns the selection. A
// write replaces whatever was held, whatever its kind.
type held struct {
	mu   sync.RWMutex
	kind Kind
	data []byte
}

func (h *held) set(k Kind, data []byte) {
	h.mu.Lock()
	h.kind, h.data = k, bytes.Clone(data)
	h.mu.Unlock()
}

func (h *held) clear() {
	h.mu.Lock()
	h.data = nil
	h.mu.Unlock()
}

func (h *held) get(k Kind) []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.kind != k {
		return nil
	}
	return h.data
}

// forTarget returns the held payload converted to the named target, or nil.
func (h *held) forTarget(target string) []byte {
	k, ok := kindOf(target)
	if !ok {
		return nil
	}
	return h.get(k)
}

// offered lists the target names the held data can be converted to.
func (h *held) offered() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.data) == 0 {
		return nil
	}
	return slices.Clone(targets[h.kind])
}

type backend interface {
	write(k Kind, data []byte) error
	read(k Kind) ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		if displayRequired && !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		active, initErr = openBackend()
	})
	return initErr
}

// WriteImage publishes img to the clipboard as PNG.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return active.write(KindImage, buf.Bytes())
}

// ReadImage decodes the clipboard image. Any format the importer accepts is
// decoded, not only PNG.
func ReadImage() (*image.NRGBA, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.read(KindImage)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return project.DecodeImageBytes(data)
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.write(KindText, []byte(text))
}

// ReadText returns the clipboard text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.read(KindText)
	if err != nil {
		return "", err
	}
	// Some applications include a trailing NUL in STRING responses.
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return "", ErrEmpty
	}
	return string(data), nil
}
