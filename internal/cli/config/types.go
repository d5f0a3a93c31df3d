// Package config provides configuration management for the unitremix CLI.
//
// Scalar settings are layered with koanf (defaults, config file, UNITREMIX_
// environment variables, flags). The layers and country_aliases sections
// come from the shared internal/config package, which decodes them with
// yaml.v3 to keep their order and dotted keys.
package config

import (
	sharedcfg "github.com/leapstack-labs/unitremix/internal/config"
	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/leapstack-labs/unitremix/internal/vector"
)

// Layers is an alias for the shared layers section type.
type Layers = sharedcfg.Layers

// Config holds all CLI configuration options.
type Config struct {
	NUTS      string        `koanf:"nuts"`
	GADM      string        `koanf:"gadm"`
	Output    string        `koanf:"output"`
	Layer     string        `koanf:"layer"`
	Driver    vector.Driver `koanf:"driver"`
	Countries []string      `koanf:"countries"`
	// Assign holds Country=source overrides for the selected layer.
	Assign                []string `koanf:"assign"`
	RejectLayerCollisions bool     `koanf:"reject_layer_collisions"`
	LogLevel              string   `koanf:"log_level"`
	LogFormat             string   `koanf:"log_format"`
	Format                string   `koanf:"format"`
	Verbose               bool     `koanf:"verbose"`

	// Filled from the config file by LoadConfig, not by koanf.
	Layers         Layers            `koanf:"-"`
	CountryAliases map[string]string `koanf:"-"`
	ProjectRoot    string            `koanf:"-"`
}

// LayerConfig returns the assignment of the selected analysis layer.
func (c *Config) LayerConfig() units.LayerConfig {
	return c.Layers[c.Layer]
}

// CollisionPolicy maps reject_layer_collisions to the repository policy.
func (c *Config) CollisionPolicy() units.CollisionPolicy {
	if c.RejectLayerCollisions {
		return units.RejectCollisions
	}
	return units.SecondSourceWins
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultNUTSPath  = sharedcfg.DefaultNUTSPath
	DefaultGADMPath  = sharedcfg.DefaultGADMPath
	DefaultLayer     = sharedcfg.DefaultLayer
	DefaultDriver    = sharedcfg.DefaultDriver
	DefaultLogLevel  = sharedcfg.DefaultLogLevel
	DefaultLogFormat = sharedcfg.DefaultLogFormat
	DefaultFormat    = sharedcfg.DefaultFormat
)
