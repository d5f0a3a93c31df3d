package config

import (
	"path/filepath"

	"github.com/leapstack-labs/unitremix/internal/vector"
)

// Default configuration values.
const (
	DefaultNUTSPath  = "build/data/administrative-borders-nuts.gpkg"
	DefaultGADMPath  = "build/data/administrative-borders-gadm.gpkg"
	DefaultLayer     = "national"
	DefaultDriver    = vector.DriverGeoJSON
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultFormat    = "text"

	// DefaultOutputDir holds one directory per analysis layer.
	DefaultOutputDir = "build/data"
)

// DefaultOutputPath returns where a layer is written when no output path is
// configured: build/data/<layer>/units.<ext>.
func DefaultOutputPath(layer string, driver vector.Driver) string {
	return filepath.Join(DefaultOutputDir, layer, "units"+driver.Extension())
}
