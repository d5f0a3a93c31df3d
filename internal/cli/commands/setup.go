package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/unitremix/internal/cli/config"
	"github.com/leapstack-labs/unitremix/internal/country"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *country.Registry
	Renderer *Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command and builds the country registry with the configured aliases.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		return nil, errors.New("configuration was not loaded")
	}

	registry, err := country.New(cfg.CountryAliases)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Registry: registry,
		Renderer: NewRenderer(cmd.OutOrStdout(), cfg.Format),
	}, nil
}
