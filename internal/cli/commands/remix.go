package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/leapstack-labs/unitremix/internal/vector"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewRemixCommand creates the remix command.
func NewRemixCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "remix",
		Short: "Build the unit layer of one analysis layer",
		Long: `Build the units of one analysis layer from the NUTS and GADM datasets.

Every layer of both datasets is loaded; a layer present in both comes from
GADM. The per-country assignment of the selected layer picks which source
layer each country's units come from. Nothing is written unless the sources
share one CRS, every required country is assigned and every required
country ends up with at least one unit. The continental layer is dissolved
into a single unit.`,
		Example: `  # Build the national layer for two countries
  unitremix remix --layer national --country Ireland --country France

  # Validate a config without writing anything
  unitremix remix --layer regional --dry-run

  # Override one assignment and write a GeoPackage
  unitremix remix --layer regional --assign Switzerland=gadm1 --driver GPKG -o units.gpkg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemix(cmd, dryRun)
		},
	}

	cmd.Flags().String("nuts", "", "Path to the NUTS dataset")
	cmd.Flags().String("gadm", "", "Path to the GADM dataset")
	cmd.Flags().StringP("output", "o", "", "Output path (default: build/data/<layer>/units.<ext>)")
	cmd.Flags().StringP("layer", "l", "", "Analysis layer to build (e.g. continental, national, regional)")
	cmd.Flags().String("driver", "", "Output driver (GeoJSON|GPKG)")
	cmd.Flags().StringArray("country", nil, "Required country, repeatable")
	cmd.Flags().StringArray("assign", nil, "Country=source override of the layer config, repeatable")
	cmd.Flags().Bool("reject-collisions", false, "Fail when both datasets contain a layer of the same name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run every check without writing")

	_ = cmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(vector.DriverGeoJSON), string(vector.DriverGPKG)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRemix(cmd *cobra.Command, dryRun bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger.With("run_id", uuid.NewString())

	remixer := &units.Remixer{
		Reader:     vector.NewReader(),
		Writer:     vector.NewWriter(cfg.Driver),
		Resolve:    cmdCtx.Registry.Alpha3,
		Collisions: cfg.CollisionPolicy(),
		Logger:     logger,
	}

	result, err := remixer.Remix(cmd.Context(), units.Request{
		NUTSPath:    cfg.NUTS,
		GADMPath:    cfg.GADM,
		OutputPath:  cfg.Output,
		LayerName:   cfg.Layer,
		LayerConfig: cfg.LayerConfig(),
		Countries:   cfg.Countries,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.JSON() {
		return r.Encode(result)
	}

	status := "written"
	if !result.Written {
		status = "dry run, not written"
	}
	r.Table(table.Row{"Layer", "Features", "Countries", "CRS", "Output"}, []table.Row{
		{result.Layer, result.Features, result.Countries, result.CRS.String(), fmt.Sprintf("%s (%s)", result.Output, status)},
	})
	if dryRun {
		if err := writeLayerConfig(r.Writer(), cfg.Layer, cfg.LayerConfig()); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(r.Writer(), "Done in %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

// writeLayerConfig prints the effective assignment, --assign overrides
// included, as a layers section that can be pasted into unitremix.yaml.
func writeLayerConfig(w io.Writer, layer string, lc units.LayerConfig) error {
	out, err := yaml.Marshal(map[string]map[string]units.LayerConfig{"layers": {layer: lc}})
	if err != nil {
		return fmt.Errorf("failed to encode layer config: %w", err)
	}
	_, _ = fmt.Fprintf(w, "\nEffective layer config (%d countries):\n%s\n", len(lc), out)
	return nil
}
