// Package project reads and writes layered paint documents. A project is a
// zip archive holding a project.json metadata record and one PNG per layer.
package project

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/h2non/filetype"
	"golang.org/x/sync/errgroup"

	"github.com/example/paintframe/internal/paint"
)

const (
	// Version is written to every saved project.
	Version = "1.0"
	// Ext is the conventional project file extension.
	Ext = ".pproj"

	metadataName = "project.json"
	maxAssetSize = 256 << 20
)

var (
	ErrNoMetadata      = errors.New("project: archive has no project.json")
	ErrInvalidMetadata = errors.New("project: invalid project.json")
	ErrCorruptAsset    = errors.New("project: corrupt layer asset")
)

// LayerMeta describes one layer in project.json.
type LayerMeta struct {
	Name     string `json:"name"`
	Visible  bool   `json:"visible"`
	Locked   bool   `json:"locked"`
	Filename string `json:"filename"`
}

// UnmarshalJSON defaults missing flags: visible to true and locked to false.
func (m *LayerMeta) UnmarshalJSON(b []byte) error {
	type raw LayerMeta
	r := raw{Visible: true}
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*m = LayerMeta(r)
	return nil
}

// Metadata is the project.json record.
type Metadata struct {
	Version      string      `json:"version"`
	CanvasWidth  int         `json:"canvas_width"`
	CanvasHeight int         `json:"canvas_height"`
	Layers       []LayerMeta `json:"layers"`
}

// LayerFilename is the archive path of layer i.
func LayerFilename(i int) string {
	return fmt.Sprintf("layers/layer_%d.png", i)
}

// MetadataOf describes snap without its pixels.
func MetadataOf(snap paint.Snapshot) Metadata {
	md := Metadata{
		Version:      Version,
		CanvasWidth:  snap.Width,
		CanvasHeight: snap.Height,
		Layers:       make([]LayerMeta, len(snap.Layers)),
	}
	for i, l := range snap.Layers {
		md.Layers[i] = LayerMeta{
			Name:     l.Name,
			Visible:  l.Visible,
			Locked:   l.Locked,
			Filename: LayerFilename(i),
		}
	}
	return md
}

// Encode writes snap to w as a project archive. Layers are PNG encoded in
// parallel and written in store order after the metadata.
func Encode(w io.Writer, snap paint.Snapshot) error {
	if len(snap.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidMetadata)
	}
	blobs := make([][]byte, len(snap.Layers))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range snap.Layers {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := png.Encode(&buf, l.Image); err != nil {
				return fmt.Errorf("encode layer %d: %w", i, err)
			}
			blobs[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	md, err := json.MarshalIndent(MetadataOf(snap), "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	zw := zip.NewWriter(w)
	if err := writeEntry(zw, metadataName, md, zip.Deflate); err != nil {
		return err
	}
	for i, b := range blobs {
		// PNG data is already compressed.
		if err := writeEntry(zw, LayerFilename(i), b, zip.Store); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte, method uint16) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Save writes snap to path, creating missing parent directories. The archive
// is written to a temporary sibling and renamed into place.
func Save(path string, snap paint.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return fmt.Errorf("save project %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save project %s: %w", path, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save project %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save project %s: %w", path, err)
	}
	return nil
}

// Load reads the project at path. Nothing is returned unless every layer
// decoded.
func Load(path string) (paint.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return paint.Snapshot{}, fmt.Errorf("load project %s: %w", path, err)
	}
	snap, err := Decode(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return paint.Snapshot{}, fmt.Errorf("load project %s: %w", path, err)
	}
	return snap, nil
}

// Inspect returns the metadata of the project at path without decoding any
// layer.
func Inspect(path string) (Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("inspect project %s: %w", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return Metadata{}, fmt.Errorf("inspect project %s: %w", path, err)
	}
	md, err := readMetadata(zr)
	if err != nil {
		return Metadata{}, fmt.Errorf("inspect project %s: %w", path, err)
	}
	return md, nil
}

// Decode reads a project archive. Layer assets of the wrong size are cropped
// or padded to the canvas. The last layer becomes active.
func Decode(r io.ReaderAt, size int64) (paint.Snapshot, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return paint.Snapshot{}, fmt.Errorf("open archive: %w", err)
	}
	md, err := readMetadata(zr)
	if err != nil {
		return paint.Snapshot{}, err
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	assets := make([]*zip.File, len(md.Layers))
	for i, lm := range md.Layers {
		f, ok := files[lm.Filename]
		if !ok {
			return paint.Snapshot{}, fmt.Errorf("%w: layer %d: %s missing", ErrCorruptAsset, i, lm.Filename)
		}
		assets[i] = f
	}

	images := make([]*image.NRGBA, len(md.Layers))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, lm := range md.Layers {
		g.Go(func() error {
			img, err := decodeAsset(assets[i])
			if err != nil {
				return fmt.Errorf("%w: layer %d (%s): %v", ErrCorruptAsset, i, lm.Filename, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return paint.Snapshot{}, err
	}

	w, h := md.CanvasWidth, md.CanvasHeight
	if w <= 0 || h <= 0 {
		b := images[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}
	snap := paint.Snapshot{Width: w, Height: h, Active: len(md.Layers) - 1}
	snap.Layers = make([]*paint.Layer, len(md.Layers))
	for i, lm := range md.Layers {
		img := images[i]
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h || b.Min != (image.Point{}) {
			img = paint.CropExtend(img, w, h)
		}
		snap.Layers[i] = &paint.Layer{Name: lm.Name, Image: img, Visible: lm.Visible, Locked: lm.Locked}
	}
	return snap, nil
}

func readMetadata(zr *zip.Reader) (Metadata, error) {
	var md Metadata
	f, err := zr.Open(metadataName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return md, ErrNoMetadata
		}
		return md, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&md); err != nil {
		return md, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if len(md.Layers) == 0 {
		return md, fmt.Errorf("%w: no layers", ErrInvalidMetadata)
	}
	// Zero dimensions fall back to the first layer's size.
	w, h := max(md.CanvasWidth, 1), max(md.CanvasHeight, 1)
	if md.CanvasWidth < 0 || md.CanvasHeight < 0 || !paint.ValidSize(w, h) {
		return md, fmt.Errorf("%w: canvas %dx%d", ErrInvalidMetadata, md.CanvasWidth, md.CanvasHeight)
	}
	return md, nil
}

func decodeAsset(f *zip.File) (*image.NRGBA, error) {
	if f.UncompressedSize64 > maxAssetSize {
		return nil, fmt.Errorf("asset too large (%d bytes)", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, maxAssetSize))
	if err != nil {
		return nil, err
	}
	if !filetype.Is(b, "png") {
		return nil, errors.New("not a PNG image")
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if !paint.ValidSize(cfg.Width, cfg.Height) {
		return nil, fmt.Errorf("image %dx%d exceeds the canvas limit", cfg.Width, cfg.Height)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return paint.ToNRGBA(img), nil
}
