package project

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/example/paintframe/internal/paint"
)

var (
	ErrUnsupportedFormat = errors.New("project: unsupported image format")
)

// JPEGQuality is used for .jpg and .jpeg exports.
const JPEGQuality = 95

// Format is a raster format the exporter can write.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

// FormatForPath picks the export format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Flatten draws img over opaque white.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(paint.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// EncodeImage flattens img and writes it to w in format f.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	flat := Flatten(img)
	switch f {
	case FormatPNG:
		return png.Encode(w, flat)
	case FormatJPEG:
		return jpeg.Encode(w, flat, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		return bmp.Encode(w, flat)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// Export writes a flattened copy of img to path in the format named by its
// extension.
func Export(path string, img image.Image) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// DecodeImage reads a raster image for import. The format is sniffed from
// the content rather than trusted from the extension.
func DecodeImage(path string) (*image.NRGBA, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, err := DecodeImageBytes(b)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImageBytes decodes png, jpeg, gif, bmp, tiff or webp data.
func DecodeImageBytes(b []byte) (*image.NRGBA, error) {
	kind, err := filetype.Match(b)
	if err != nil {
		return nil, err
	}
	var decode func(io.Reader) (image.Image, error)
	switch kind.Extension {
	case "png":
		decode = png.Decode
	case "jpg":
		decode = jpeg.Decode
	case "gif":
		decode = gif.Decode
	case "bmp":
		decode = bmp.Decode
	case "tif":
		decode = tiff.Decode
	case "webp":
		decode = webp.Decode
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return paint.ToNRGBA(img), nil
}
