// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	clitestutil "github.com/leapstack-labs/unitremix/internal/cli/testutil"
	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewRemixCommand(t *testing.T) {
	cmd := NewRemixCommand()

	assert.Equal(t, "remix", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"nuts", "gadm", "output", "layer", "driver", "country", "assign", "reject-collisions", "dry-run"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "stringArray", cmd.Flags().Lookup("country").Value.Type(), "country names may contain commas")
}

func TestNewLayersCommand(t *testing.T) {
	cmd := NewLayersCommand()

	assert.Equal(t, "layers [dataset...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewCountriesCommand(t *testing.T) {
	cmd := NewCountriesCommand()

	assert.Equal(t, "countries <name>...", cmd.Use)
	assert.Error(t, cmd.Args(cmd, nil), "at least one name is required")
	assert.NoError(t, cmd.Args(cmd, []string{"Ireland"}))
}

func TestCommandsRequireLoadedConfig(t *testing.T) {
	cmd := NewCountriesCommand()
	cmd.SetArgs([]string{"Ireland"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	assert.ErrorContains(t, err, "configuration was not loaded")
}

func TestWriteLayerConfig(t *testing.T) {
	buf := new(bytes.Buffer)
	lc := units.LayerConfig{{Country: "Switzerland", Source: "gadm1"}, {Country: "Ireland", Source: "nuts2"}}
	require.NoError(t, writeLayerConfig(buf, "regional", lc))

	out := buf.String()
	assert.Contains(t, out, "Effective layer config (2 countries)")

	var decoded struct {
		Layers map[string]units.LayerConfig `yaml:"layers"`
	}
	body := out[strings.Index(out, "layers:"):]
	require.NoError(t, yaml.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, lc, decoded.Layers["regional"], "the printed section decodes in the same order")
}

func TestRenderer(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		buf := new(bytes.Buffer)
		r := NewRenderer(buf, "text")
		assert.False(t, r.JSON())

		r.Table(table.Row{"Layer", "Features"}, []table.Row{{"national", 3}})
		out := buf.String()
		assert.Contains(t, out, "LAYER")
		assert.Contains(t, out, "national")
		clitestutil.AssertNoANSI(t, out)
	})

	t.Run("json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		r := NewRenderer(buf, "json")
		require.True(t, r.JSON())

		require.NoError(t, r.Encode(map[string]int{"features": 3}))
		assert.JSONEq(t, `{"features": 3}`, buf.String())
	})
}
