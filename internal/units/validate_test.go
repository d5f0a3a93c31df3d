package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCRS(t *testing.T) {
	tests := []struct {
		name    string
		layers  []*Layer
		want    CRS
		wantErr bool
	}{
		{name: "empty set", layers: nil, want: ""},
		{name: "single layer", layers: []*Layer{layer("nuts0", "EPSG:3035")}, want: "EPSG:3035"},
		{
			name:   "all equal",
			layers: []*Layer{layer("nuts0", "EPSG:3035"), layer("nuts1", "EPSG:3035"), layer("gadm0", "EPSG:3035")},
			want:   "EPSG:3035",
		},
		{
			name:    "one differs",
			layers:  []*Layer{layer("nuts0", "EPSG:3035"), layer("gadm0", WGS84)},
			wantErr: true,
		},
		{
			name:    "undeclared differs from declared",
			layers:  []*Layer{layer("nuts0", "EPSG:3035"), layer("gadm0", "")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewLayerSet()
			for _, l := range tt.layers {
				set.Put(l.Name, l)
			}

			got, err := ValidateCRS(set)
			if tt.wantErr {
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, CheckCRS, cfgErr.Check)
				assert.Contains(t, err.Error(), "inconsistent CRS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCRS_NamesBothLayers(t *testing.T) {
	set := NewLayerSet()
	set.Put("nuts0", layer("nuts0", "EPSG:3035"))
	set.Put("gadm1", layer("gadm1", WGS84))

	_, err := ValidateCRS(set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nuts0"`)
	assert.Contains(t, err.Error(), `"gadm1"`)
	assert.Contains(t, err.Error(), "EPSG:4326")
}

func TestValidateAssignment(t *testing.T) {
	cfg := LayerConfig{{Country: "Ireland", Source: "gadm1"}, {Country: "Germany", Source: "nuts1"}}

	tests := []struct {
		name     string
		required []string
		missing  []string
	}{
		{name: "no required countries", required: nil},
		{name: "subset", required: []string{"Ireland"}},
		{name: "exact", required: []string{"Germany", "Ireland"}},
		{name: "one missing", required: []string{"Ireland", "France"}, missing: []string{"France"}},
		{name: "all missing", required: []string{"France", "Switzerland"}, missing: []string{"France", "Switzerland"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(tt.required, cfg, "regional")
			if len(tt.missing) == 0 {
				assert.NoError(t, err)
				return
			}

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "regional", cfgErr.Layer)
			assert.Equal(t, CheckLayerConfig, cfgErr.Check)
			assert.Contains(t, err.Error(), "layer regional")
			for _, c := range tt.missing {
				assert.Contains(t, cfgErr.Message, c)
			}
		})
	}
}

func TestValidateCompleteness(t *testing.T) {
	built := layer("national", "EPSG:3035",
		feature(t, "IE1", "IRL", 0),
		feature(t, "IE2", "IRL", 1),
		feature(t, "FR1", "FRA", 2),
	)

	tests := []struct {
		name     string
		layer    *Layer
		required []string
		wantErr  string
	}{
		{name: "all present", layer: built, required: []string{"Ireland", "France"}},
		{name: "duplicates are fine", layer: built, required: []string{"Ireland"}},
		{name: "nothing required", layer: built},
		{name: "nothing required of empty layer", layer: layer("national", "")},
		{name: "missing", layer: built, required: []string{"Ireland", "Germany"}, wantErr: "Germany (DEU)"},
		{name: "empty layer", layer: layer("national", ""), required: []string{"France"}, wantErr: "France (FRA)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompleteness(tt.layer, "national", tt.required, testResolver)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var dataErr *DataError
			require.ErrorAs(t, err, &dataErr)
			assert.Equal(t, CheckCompleteness, dataErr.Check)
			assert.Equal(t, "national", dataErr.Layer)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCompleteness_LookupError(t *testing.T) {
	err := ValidateCompleteness(layer("national", ""), "national", []string{"Atlantis"}, testResolver)

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Atlantis", lookupErr.Name)
}

func TestLookup_KeepsResolverLookupError(t *testing.T) {
	inner := &LookupError{Name: "Narnia", Err: errors.New("fictional")}
	_, err := lookup(func(string) (string, error) { return "", inner }, "Narnia")
	assert.Same(t, inner, err)
}
