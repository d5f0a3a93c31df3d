package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/unitremix/internal/vector"
	"github.com/spf13/cobra"
)

// BuildInfo is the build metadata printed by the version command.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	// Drivers are the output formats remix can write.
	Drivers []vector.Driver `json:"drivers"`
}

// NewVersionCommand creates the version command. It runs without a loaded
// config, so its output format comes from its own --json flag.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the unitremix version, the commit and date it was built from, and the output drivers it supports.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := BuildInfo{
				Version:   version,
				BuildDate: buildDate,
				GitCommit: gitCommit,
				GoVersion: runtime.Version(),
				Drivers:   []vector.Driver{vector.DriverGeoJSON, vector.DriverGPKG},
			}
			r := NewRenderer(cmd.OutOrStdout(), "text")
			if asJSON {
				return r.Encode(info)
			}

			drivers := make([]string, len(info.Drivers))
			for i, d := range info.Drivers {
				drivers[i] = string(d)
			}
			w := r.Writer()
			_, _ = fmt.Fprintf(w, "unitremix v%s (commit %s, built %s, %s)\n", info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
			_, _ = fmt.Fprintf(w, "output drivers: %s\n", strings.Join(drivers, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}
