package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type countryMatch struct {
	Query  string `json:"query"`
	Alpha3 string `json:"alpha3"`
	Alpha2 string `json:"alpha2,omitempty"`
	Name   string `json:"name"`
}

// NewCountriesCommand creates the countries command.
func NewCountriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countries <name>...",
		Short: "Resolve country names to ISO 3166-1 alpha-3 codes",
		Long: `Resolve country names the way remix does, including the country_aliases
of the config file. Fails on the first name that cannot be resolved.`,
		Example: `  unitremix countries Ireland "Czech Republic" Kosovo`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCountries(cmd, args)
		},
	}
}

func runCountries(cmd *cobra.Command, names []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	matches := make([]countryMatch, 0, len(names))
	for _, name := range names {
		c, err := cmdCtx.Registry.Lookup(name)
		if err != nil {
			return err
		}
		matches = append(matches, countryMatch{Query: name, Alpha3: c.Alpha3, Alpha2: c.Alpha2, Name: c.Name})
	}

	r := cmdCtx.Renderer
	if r.JSON() {
		return r.Encode(matches)
	}
	rows := make([]table.Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, table.Row{m.Query, m.Alpha3, m.Alpha2, m.Name})
	}
	r.Table(table.Row{"Query", "Alpha-3", "Alpha-2", "Name"}, rows)
	return nil
}
