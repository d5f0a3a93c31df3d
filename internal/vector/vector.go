// Package vector reads and writes the vector formats unit layers travel in:
// GeoPackage (multi-layer SQLite files) and GeoJSON (one layer per file).
package vector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/unitremix/internal/units"
)

// Driver names an output format.
type Driver string

// Supported drivers.
const (
	DriverGeoJSON Driver = "GeoJSON"
	DriverGPKG    Driver = "GPKG"
)

// ParseDriver accepts driver names case-insensitively.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geojson":
		return DriverGeoJSON, nil
	case "gpkg", "geopackage":
		return DriverGPKG, nil
	}
	return "", fmt.Errorf("unknown vector driver %q, must be one of: %s, %s", s, DriverGeoJSON, DriverGPKG)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Driver) UnmarshalText(text []byte) error {
	parsed, err := ParseDriver(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Extension returns the conventional file extension of the driver.
func (d Driver) Extension() string {
	if d == DriverGPKG {
		return ".gpkg"
	}
	return ".geojson"
}

// driverForPath picks the driver of an input file from its extension.
func driverForPath(path string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpkg":
		return DriverGPKG, nil
	case ".geojson", ".json":
		return DriverGeoJSON, nil
	}
	return "", fmt.Errorf("cannot infer vector format of %s", path)
}

// Reader implements units.DatasetReader for every supported format.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ListLayers returns the layer names of the dataset at path.
func (r *Reader) ListLayers(ctx context.Context, path string) ([]string, error) {
	d, err := driverForPath(path)
	if err != nil {
		return nil, err
	}
	if d == DriverGPKG {
		return listGPKGLayers(ctx, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return []string{geoJSONLayerName(path)}, nil
}

// ReadLayer reads one named layer of the dataset at path.
func (r *Reader) ReadLayer(ctx context.Context, path, name string) (*units.Layer, error) {
	d, err := driverForPath(path)
	if err != nil {
		return nil, err
	}
	if d == DriverGPKG {
		return readGPKGLayer(ctx, path, name)
	}
	if name != geoJSONLayerName(path) {
		return nil, fmt.Errorf("layer %q not found in %s", name, path)
	}
	return readGeoJSON(path)
}

// Writer implements units.LayerWriter for one driver.
type Writer struct {
	Driver Driver
}

// NewWriter creates a Writer for driver.
func NewWriter(driver Driver) *Writer {
	return &Writer{Driver: driver}
}

// WriteLayer writes layer to path. The file is assembled next to path and
// renamed into place, so readers never see a partial file and a failed
// write leaves any previous file untouched.
func (w *Writer) WriteLayer(ctx context.Context, layer *units.Layer, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	switch w.Driver {
	case DriverGeoJSON, "":
		err = writeGeoJSON(tmp, layer)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
	case DriverGPKG:
		// SQLite opens the file itself.
		if err = tmp.Close(); err == nil {
			err = writeGPKG(ctx, tmpPath, layer)
		}
	default:
		_ = tmp.Close()
		err = fmt.Errorf("unsupported vector driver %q", w.Driver)
	}
	if err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, 0644); err != nil { //nolint:gosec // G302: output is meant to be shared
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
