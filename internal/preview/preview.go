// Package preview turns heightmaps into greyscale preview images.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/flatland/pkg/heightmap"
)

// Preview errors.
var (
	ErrEmptyHeightmap    = errors.New("heightmap is empty")
	ErrUnsupportedFormat = errors.New("unsupported preview format")
)

// Texture builds the 8-bit visualization texture: each sample's high byte is
// replicated across RGB with full opacity.
func Texture(g *heightmap.Grid) (*image.RGBA, error) {
	if err := check(g); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := uint8(g.Data[y*g.Width+x] >> 8)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img, nil
}

// Gray16 builds a lossless 16-bit greyscale preview.
func Gray16(g *heightmap.Grid) (*image.Gray16, error) {
	if err := check(g); err != nil {
		return nil, err
	}

	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: g.Data[y*g.Width+x]})
		}
	}
	return img, nil
}

func check(g *heightmap.Grid) error {
	if g == nil || len(g.Data) == 0 {
		return ErrEmptyHeightmap
	}
	if len(g.Data) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid holds %d samples", heightmap.ErrSizeMismatch, g.Width, g.Height, len(g.Data))
	}
	return nil
}

// Format is an image container.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode writes img to w in the given format. BMP has no 16-bit grey mode,
// so 16-bit images lose their low byte there.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteFile encodes img into path, creating parent directories as needed.
func WriteFile(path string, img image.Image) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	return Encode(file, img, f)
}
