package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/leapstack-labs/unitremix/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectFile_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `
layer: regional
layers:
  regional:
    Ireland: nuts2
    France: nuts2
    Switzerland: gadm1
    Albania: nuts2
  continental:
    Ireland: nuts0
country_aliases:
  St. Lucia: LCA
  Kosovo: XKX
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	pf, err := LoadProjectFile(path)
	require.NoError(t, err)
	layers := pf.Layers

	assert.Equal(t, []string{"continental", "regional"}, layers.Names())
	assert.Equal(t, map[string]string{"St. Lucia": "LCA", "Kosovo": "XKX"}, pf.CountryAliases)
	assert.Equal(t, units.LayerConfig{
		{Country: "Ireland", Source: "nuts2"},
		{Country: "France", Source: "nuts2"},
		{Country: "Switzerland", Source: "gadm1"},
		{Country: "Albania", Source: "nuts2"},
	}, layers["regional"])
}

func TestLoadProjectFile_NoSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("layer: national\n"), 0600))

	pf, err := LoadProjectFile(path)
	require.NoError(t, err)
	assert.NotNil(t, pf.Layers)
	assert.Empty(t, pf.Layers)
	assert.Empty(t, pf.CountryAliases)
}

func TestLoadProjectFile_DuplicateCountry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "layers:\n  national:\n    Ireland: nuts0\n    Ireland: gadm0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadProjectFile(path)
	assert.Error(t, err)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), nil, 0600))

	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Equal(t, "", FindProjectRoot(nested, 2), "search depth is bounded")
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
	assert.Equal(t, "", FindConfigFile(nested))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("build", "data", "national", "units.geojson"), DefaultOutputPath("national", DefaultDriver))
	assert.Equal(t, filepath.Join("build", "data", "regional", "units.gpkg"), DefaultOutputPath("regional", vector.DriverGPKG))
}
