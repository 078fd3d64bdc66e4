package landscape

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flatland/internal/preview"
	"github.com/Faultbox/flatland/pkg/heightmap"
)

// Manifest describes a raw heightmap for the terrain importer.
type Manifest struct {
	Label     string    `yaml:"label"`
	Raw       string    `yaml:"raw"`
	Format    string    `yaml:"format"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Layout    Layout    `yaml:"layout"`
	Transform Transform `yaml:"transform"`
	Bounds    Bounds    `yaml:"bounds"`
	Min       uint16    `yaml:"min"`
	Max       uint16    `yaml:"max"`
	Mean      float64   `yaml:"mean"`
}

// rawFormat names the sample encoding written by WriteRaw.
const rawFormat = "r16le"

// Manifest builds the importer manifest for the landscape.
func (ls *Landscape) Manifest(rawName string) Manifest {
	st := ls.Grid.Stats()
	return Manifest{
		Label:     ls.Label,
		Raw:       rawName,
		Format:    rawFormat,
		Width:     ls.Grid.Width,
		Height:    ls.Grid.Height,
		Layout:    ls.Layout,
		Transform: ls.Transform,
		Bounds:    ls.Bounds,
		Min:       st.Min,
		Max:       st.Max,
		Mean:      st.Mean,
	}
}

// WriteRaw writes the grid as a headerless little-endian .r16 file.
func (ls *Landscape) WriteRaw(path string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	if err := ls.Grid.WriteRaw(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteManifest writes the YAML manifest pointing at rawName.
func (ls *Landscape) WriteManifest(path, rawName string) error {
	data, err := yaml.Marshal(ls.Manifest(rawName))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WritePreview renders the visualization texture (or the 16-bit grey image)
// into path. Failures are logged at error level and returned; they never
// touch the grid.
func (ls *Landscape) WritePreview(path string, full bool, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	var img image.Image
	var err error
	if full {
		img, err = preview.Gray16(ls.Grid)
	} else {
		img, err = preview.Texture(ls.Grid)
	}
	if err == nil {
		err = preview.WriteFile(path, img)
	}

	switch {
	case err == nil:
		log.Info("heightmap preview written", zap.String("path", path), zap.Bool("16bit", full))
	case errors.Is(err, preview.ErrEmptyHeightmap):
		log.Warn("heightmap is empty, no preview written", zap.String("path", path))
	default:
		log.Error("failed to create preview", zap.String("path", path), zap.Error(err))
	}
	return err
}

// Export writes the raw buffer, manifest and preview to dir.
// Empty names are skipped. Every step runs; errors are combined.
func (ls *Landscape) Export(dir, rawName, manifestName, previewName string, preview16 bool, log *zap.Logger) error {
	var err error
	if rawName != "" {
		if e := ls.WriteRaw(filepath.Join(dir, rawName)); e != nil {
			err = multierr.Append(err, fmt.Errorf("writing raw heightmap: %w", e))
		}
	}
	if manifestName != "" {
		if e := ls.WriteManifest(filepath.Join(dir, manifestName), rawName); e != nil {
			err = multierr.Append(err, fmt.Errorf("writing manifest: %w", e))
		}
	}
	if previewName != "" {
		if e := ls.WritePreview(filepath.Join(dir, previewName), preview16, log); e != nil {
			err = multierr.Append(err, fmt.Errorf("writing preview: %w", e))
		}
	}
	return err
}

// ReadRaw loads a .r16 file described by a manifest.
func ReadRaw(path string, width, height int) (g *heightmap.Grid, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return heightmap.ReadRaw(bufio.NewReader(f), width, height)
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return os.Create(path)
}
