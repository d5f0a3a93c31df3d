// Package main provides the unitremix CLI, which builds the analysis units
// of an energy-system model from NUTS and GADM boundary datasets.
package main

import (
	"os"

	"github.com/leapstack-labs/unitremix/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
