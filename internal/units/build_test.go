package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSources(t *testing.T) *LayerSet {
	t.Helper()
	set := NewLayerSet()
	set.Put("nuts1", layer("nuts1", "EPSG:3035",
		feature(t, "FR1", "FRA", 0),
		feature(t, "IE0", "IRL", 1), // must not leak into a gadm1-assigned Ireland
		feature(t, "FRB", "FRA", 2),
		feature(t, "DE1", "DEU", 3),
	))
	set.Put("gadm1", layer("gadm1", "EPSG:3035",
		feature(t, "IRL.1_1", "IRL", 4),
		feature(t, "FRA.1_1", "FRA", 5),
		feature(t, "IRL.2_1", "IRL", 6),
	))
	return set
}

func TestBuild_SelectsPerCountrySource(t *testing.T) {
	cfg := LayerConfig{{Country: "Ireland", Source: "gadm1"}, {Country: "France", Source: "nuts1"}}

	got, err := Build(cfg, buildSources(t), "EPSG:3035", testResolver)
	require.NoError(t, err)

	assert.Equal(t, CRS("EPSG:3035"), got.CRS)
	assert.Equal(t, []string{"IRL.1_1", "IRL.2_1", "FR1", "FRB"}, featureIDs(got))
	require.NoError(t, ValidateCompleteness(got, "regional", []string{"Ireland", "France"}, testResolver))
}

func TestBuild_NoCrossSourceContamination(t *testing.T) {
	sources := buildSources(t)
	cfg := LayerConfig{{Country: "Ireland", Source: "gadm1"}, {Country: "France", Source: "nuts1"}, {Country: "Germany", Source: "nuts1"}}
	sourceOf := map[string]string{"IRL": "gadm1", "FRA": "nuts1", "DEU": "nuts1"}

	got, err := Build(cfg, sources, "EPSG:3035", testResolver)
	require.NoError(t, err)
	require.Equal(t, 5, got.Len())

	for _, f := range got.Features {
		src, _ := sources.Get(sourceOf[f.CountryCode])
		assert.Contains(t, featureIDs(src), f.ID, "feature %s of %s must come from %s", f.ID, f.CountryCode, src.Name)
	}
}

func TestBuild_ConfigOrderDecidesOutputOrder(t *testing.T) {
	cfg := LayerConfig{{Country: "France", Source: "nuts1"}, {Country: "Ireland", Source: "gadm1"}}

	got, err := Build(cfg, buildSources(t), "EPSG:3035", testResolver)
	require.NoError(t, err)
	assert.Equal(t, []string{"FR1", "FRB", "IRL.1_1", "IRL.2_1"}, featureIDs(got))
}

func TestBuild_UnknownSourceLayer(t *testing.T) {
	cfg := LayerConfig{{Country: "Ireland", Source: "gadm3"}}

	_, err := Build(cfg, buildSources(t), "EPSG:3035", testResolver)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, CheckLayerConfig, cfgErr.Check)
	assert.Contains(t, err.Error(), "gadm3")
}

func TestBuild_UnknownCountry(t *testing.T) {
	cfg := LayerConfig{{Country: "Atlantis", Source: "nuts1"}}

	_, err := Build(cfg, buildSources(t), "EPSG:3035", testResolver)
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Atlantis", lookupErr.Name)
}

func TestBuild_CountryWithoutFeatures(t *testing.T) {
	cfg := LayerConfig{{Country: "Switzerland", Source: "nuts1"}}

	got, err := Build(cfg, buildSources(t), "EPSG:3035", testResolver)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	err = ValidateCompleteness(got, "national", []string{"Switzerland"}, testResolver)
	assert.Error(t, err)
}

func TestBuild_EmptyConfig(t *testing.T) {
	got, err := Build(nil, buildSources(t), "EPSG:3035", testResolver)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}
