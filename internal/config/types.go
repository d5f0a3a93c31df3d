// Package config holds the configuration pieces shared by every unitremix
// entry point: defaults, config file discovery and the ordered layers
// section of the config file.
package config

import (
	"sort"

	"github.com/leapstack-labs/unitremix/internal/units"
)

// Layers maps analysis-layer names to their ordered country assignments.
type Layers map[string]units.LayerConfig

// Names returns the configured analysis layers, sorted.
func (l Layers) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProjectFile is the part of the config file decoded with yaml.v3 rather
// than koanf: koanf loses mapping order and splits keys on dots, which
// breaks country names such as "St. Lucia".
type ProjectFile struct {
	Layers         Layers            `yaml:"layers"`
	CountryAliases map[string]string `yaml:"country_aliases"`
}
