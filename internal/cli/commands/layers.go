package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/unitremix/internal/vector"
	"github.com/spf13/cobra"
)

// layerInfo describes one layer of a dataset.
type layerInfo struct {
	Dataset   string `json:"dataset"`
	Layer     string `json:"layer"`
	CRS       string `json:"crs"`
	Features  int    `json:"features"`
	Countries int    `json:"countries"`
}

// NewLayersCommand creates the layers command.
func NewLayersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers [dataset...]",
		Short: "List the layers of vector datasets",
		Long: `List every layer of the given datasets with its CRS, feature count and
country count. Without arguments the configured NUTS and GADM datasets are
listed. Useful when writing the layers section of unitremix.yaml.`,
		Example: `  # Layers of the configured datasets
  unitremix layers

  # Layers of a specific file, as JSON
  unitremix layers build/data/administrative-borders-gadm.gpkg --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(cmd, args)
		},
	}
}

func runLayers(cmd *cobra.Command, datasets []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		datasets = []string{cmdCtx.Cfg.NUTS, cmdCtx.Cfg.GADM}
	}

	ctx := cmd.Context()
	reader := vector.NewReader()
	var infos []layerInfo
	for _, ds := range datasets {
		names, err := reader.ListLayers(ctx, ds)
		if err != nil {
			return fmt.Errorf("failed to list layers of %s: %w", ds, err)
		}
		for _, name := range names {
			layer, err := reader.ReadLayer(ctx, ds, name)
			if err != nil {
				return err
			}
			infos = append(infos, layerInfo{
				Dataset:   ds,
				Layer:     name,
				CRS:       layer.CRS.String(),
				Features:  layer.Len(),
				Countries: len(layer.CountryCodes()),
			})
		}
		cmdCtx.Logger.Debug("listed dataset", "dataset", ds, "layers", len(names))
	}

	r := cmdCtx.Renderer
	if r.JSON() {
		if infos == nil {
			infos = []layerInfo{}
		}
		return r.Encode(infos)
	}

	if len(infos) == 0 {
		_, _ = fmt.Fprintln(r.Writer(), "(0 layers)")
		return nil
	}
	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{info.Dataset, info.Layer, info.CRS, info.Features, info.Countries})
	}
	r.Table(table.Row{"Dataset", "Layer", "CRS", "Features", "Countries"}, rows)
	return nil
}
