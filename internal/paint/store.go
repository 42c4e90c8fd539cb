package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

var (
	ErrInvalidSize = errors.New("paint: canvas dimensions must be positive and within limits")
	ErrLayerIndex  = errors.New("paint: layer index out of range")
)

// BackgroundName is the name given to the first layer of a new store.
const BackgroundName = "Background"

// MaxCanvasSide and MaxCanvasPixels bound every canvas dimension.
const (
	MaxCanvasSide   = 16384
	MaxCanvasPixels = 64 << 20
)

// ValidSize reports whether width x height is an allowed canvas size.
func ValidSize(width, height int) bool {
	return width > 0 && height > 0 && width <= MaxCanvasSide && height <= MaxCanvasSide &&
		width*height <= MaxCanvasPixels
}

// ResizeMode selects how existing pixels are carried across a canvas resize.
type ResizeMode int

const (
	// ResizeCrop pastes each bitmap at (0,0), truncating or padding with
	// transparency.
	ResizeCrop ResizeMode = iota
	// ResizeScale resamples each bitmap to the new size.
	ResizeScale
)

func (m ResizeMode) String() string {
	if m == ResizeScale {
		return "scale"
	}
	return "crop"
}

// Store is an ordered stack of layers sharing one canvas size. Index 0 is the
// bottom of the stack.
type Store struct {
	layers []*Layer
	active int
	width  int
	height int
}

// NewStore creates a store with a single opaque white background layer.
func NewStore(width, height int) (*Store, error) {
	if !ValidSize(width, height) {
		return nil, ErrInvalidSize
	}
	s := &Store{width: width, height: height}
	s.AddLayer(BackgroundName, White)
	return s, nil
}

// Size returns the canvas dimensions.
func (s *Store) Size() (width, height int) { return s.width, s.height }

// Bounds returns the canvas rectangle anchored at the origin.
func (s *Store) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Len returns the number of layers.
func (s *Store) Len() int { return len(s.layers) }

// ActiveIndex returns the index of the layer eligible for drawing.
func (s *Store) ActiveIndex() int { return s.active }

// Active returns the layer eligible for drawing.
func (s *Store) Active() *Layer { return s.layers[s.active] }

// Layer returns the layer at index i or nil when i is out of range.
func (s *Store) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom to top. The slice is a copy; the layers are
// not.
func (s *Store) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Drawable reports whether the active layer accepts drawing.
func (s *Store) Drawable() bool { return s.Active().Drawable() }

// AddLayer appends a canvas-sized layer filled with col and makes it active.
// An empty name becomes "Layer N" where N is the current layer count.
func (s *Store) AddLayer(name string, col color.NRGBA) int {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(s.layers))
	}
	s.layers = append(s.layers, NewLayer(name, s.width, s.height, col))
	s.active = len(s.layers) - 1
	return s.active
}

// DeleteActiveLayer removes the active layer. It refuses, returning false,
// when only one layer remains.
func (s *Store) DeleteActiveLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	s.layers = append(s.layers[:s.active], s.layers[s.active+1:]...)
	if s.active >= len(s.layers) {
		s.active = len(s.layers) - 1
	}
	return true
}

// Reorder moves the layer at from to index to. The moved layer becomes active.
func (s *Store) Reorder(from, to int) error {
	if err := s.checkIndex(from); err != nil {
		return err
	}
	if err := s.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	l := s.layers[from]
	s.layers = append(s.layers[:from], s.layers[from+1:]...)
	s.layers = append(s.layers[:to], append([]*Layer{l}, s.layers[to:]...)...)
	s.active = to
	return nil
}

// Select makes layer i the active layer.
func (s *Store) Select(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.active = i
	return nil
}

// SetVisible toggles whether layer i is composited and drawable.
func (s *Store) SetVisible(i int, visible bool) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.layers[i].Visible = visible
	return nil
}

// SetLocked toggles whether layer i rejects drawing.
func (s *Store) SetLocked(i int, locked bool) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.layers[i].Locked = locked
	return nil
}

// Rename sets the display name of layer i.
func (s *Store) Rename(i int, name string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.layers[i].Name = name
	return nil
}

// ResizeCanvas reallocates every layer to width x height. Invalid dimensions
// leave the store untouched.
func (s *Store) ResizeCanvas(width, height int, mode ResizeMode) error {
	if !ValidSize(width, height) {
		return ErrInvalidSize
	}
	for _, l := range s.layers {
		if mode == ResizeScale {
			l.Image = ToNRGBA(transform.Resize(l.Image, width, height, transform.Lanczos))
		} else {
			l.Image = CropExtend(l.Image, width, height)
		}
	}
	s.width, s.height = width, height
	return nil
}

// ClearActive refills the active layer: opaque white for the bottom layer,
// transparent otherwise. Hidden or locked layers are left alone.
func (s *Store) ClearActive() bool {
	l := s.Active()
	if !l.Drawable() {
		return false
	}
	col := Transparent
	if s.active == 0 {
		col = White
	}
	draw.Draw(l.Image, l.Image.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return true
}

// ImportImage adds img as a new active layer. The image is shrunk to fit the
// canvas keeping its aspect ratio and centred on a transparent background.
func (s *Store) ImportImage(name string, img image.Image) int {
	fitted := fitWithin(img, s.width, s.height)
	fb := fitted.Bounds()
	l := NewLayer(name, s.width, s.height, Transparent)
	off := image.Pt((s.width-fb.Dx())/2, (s.height-fb.Dy())/2)
	draw.Draw(l.Image, image.Rectangle{Min: off, Max: off.Add(fb.Size())}, fitted, fb.Min, draw.Src)
	if l.Name == "" {
		l.Name = fmt.Sprintf("Layer %d", len(s.layers))
	}
	s.layers = append(s.layers, l)
	s.active = len(s.layers) - 1
	return s.active
}

// replace installs layers wholesale. Callers guarantee the invariants.
func (s *Store) replace(layers []*Layer, active, width, height int) {
	s.layers = layers
	s.active = active
	s.width = width
	s.height = height
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.layers) {
		return fmt.Errorf("%w: %d of %d", ErrLayerIndex, i, len(s.layers))
	}
	return nil
}

// fitWithin mirrors a thumbnail operation: images larger than the box are
// downsampled to fit, smaller ones are returned as they are.
func fitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := float64(maxW) / float64(w)
	if hs := float64(maxH) / float64(h); hs < scale {
		scale = hs
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return transform.Resize(img, nw, nh, transform.Lanczos)
}

// ToNRGBA returns img as a straight-alpha buffer anchored at the origin. Images
// already in that form are returned as they are.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
