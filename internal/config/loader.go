package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "unitremix.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "unitremix.yml"

// LoadProjectFile reads the sections of the config file at path that koanf
// cannot decode faithfully. A file without them yields empty maps.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the discovered config file
	if err != nil {
		return nil, err
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if pf.Layers == nil {
		pf.Layers = Layers{}
	}
	if pf.CountryAliases == nil {
		pf.CountryAliases = map[string]string{}
	}
	return &pf, nil
}

// FindConfigFile returns the config file in dir, or "" if there is none.
func FindConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from startDir, at most maxLevels directories, to
// find a directory containing unitremix.yaml or unitremix.yml.
// Returns empty string if not found.
func FindProjectRoot(startDir string, maxLevels int) string {
	dir := startDir
	for i := 0; i < maxLevels; i++ {
		if FindConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
	return ""
}
