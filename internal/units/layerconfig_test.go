package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLayerConfig_UnmarshalYAMLKeepsOrder(t *testing.T) {
	input := `
Switzerland: gadm1
Ireland: nuts2
Albania: nuts2
France: nuts2
`
	var cfg LayerConfig
	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))

	assert.Equal(t, []string{"Switzerland", "Ireland", "Albania", "France"}, cfg.Countries())
	src, ok := cfg.Source("Switzerland")
	require.True(t, ok)
	assert.Equal(t, "gadm1", src)
	_, ok = cfg.Source("Germany")
	assert.False(t, ok)
}

func TestLayerConfig_UnmarshalYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"sequence":       "- Ireland\n- France\n",
		"scalar":         "nuts0\n",
		"nested mapping": "Ireland:\n  source: nuts0\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg LayerConfig
			assert.Error(t, yaml.Unmarshal([]byte(input), &cfg))
		})
	}
}

func TestLayerConfig_UnmarshalYAMLRejectsDuplicates(t *testing.T) {
	var cfg LayerConfig
	node := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "Ireland", Line: 1},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "nuts0", Line: 1},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "Ireland", Line: 2},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "gadm0", Line: 2},
	}}
	err := cfg.UnmarshalYAML(node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already assigned on line 1")
}

func TestLayerConfig_MarshalYAMLRoundTrip(t *testing.T) {
	cfg := LayerConfig{{Country: "France", Source: "nuts2"}, {Country: "Ireland", Source: "gadm1"}}

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "France: nuts2\nIreland: gadm1\n", string(out))

	var back LayerConfig
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestLayerConfig_With(t *testing.T) {
	cfg := LayerConfig{{Country: "France", Source: "nuts2"}, {Country: "Ireland", Source: "nuts2"}}

	replaced := cfg.With("France", "gadm1")
	assert.Equal(t, LayerConfig{{Country: "France", Source: "gadm1"}, {Country: "Ireland", Source: "nuts2"}}, replaced)

	appended := cfg.With("Albania", "nuts2")
	assert.Equal(t, []string{"France", "Ireland", "Albania"}, appended.Countries())

	assert.Equal(t, "nuts2", cfg[0].Source, "With must not modify the receiver")
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Assignment
		wantErr bool
	}{
		{in: "Ireland=nuts0", want: Assignment{Country: "Ireland", Source: "nuts0"}},
		{in: " Bosnia and Herzegovina = gadm1 ", want: Assignment{Country: "Bosnia and Herzegovina", Source: "gadm1"}},
		{in: "Ireland", wantErr: true},
		{in: "=nuts0", wantErr: true},
		{in: "Ireland=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAssignment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
