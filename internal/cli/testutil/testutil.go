// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/unitremix/internal/testutil"
	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/leapstack-labs/unitremix/internal/vector"
)

// ProjectConfig is the unitremix.yaml written by SetupTestProject.
const ProjectConfig = `
nuts: nuts.gpkg
gadm: gadm.gpkg
countries: [Ireland, France, Switzerland]
layers:
  continental:
    Ireland: nuts0
    France: nuts0
    Switzerland: gadm0
  national:
    Ireland: nuts0
    France: nuts0
    Switzerland: gadm0
  regional:
    France: nuts2
    Ireland: nuts2
    Switzerland: gadm1
`

// ProjectCRS is the CRS of every fixture layer.
const ProjectCRS = units.CRS("EPSG:3035")

// Unit builds a unit square feature at x.
func Unit(t testing.TB, id, code string, x float64) units.Feature {
	t.Helper()
	return units.Feature{ID: id, CountryCode: code, Name: id, Type: "region", Proper: 1, Geometry: testutil.Square(t, x, 0, 1)}
}

// SetupTestProject creates a temporary project holding a NUTS and a GADM
// GeoPackage plus a unitremix.yaml, and returns its directory.
//
// nuts.gpkg has nuts0 (IE, FR, CH-NUTS) and nuts2 (IE04, FR10, FRB0, IE05).
// gadm.gpkg has gadm0 (CHE) and gadm1 (CHE.1_1, CHE.2_1).
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	ctx := context.Background()

	err := vector.WriteGPKG(ctx, filepath.Join(tmpDir, "nuts.gpkg"),
		&units.Layer{Name: "nuts0", CRS: ProjectCRS, Features: []units.Feature{
			Unit(t, "IE", "IRL", 0), Unit(t, "FR", "FRA", 1), Unit(t, "CH-NUTS", "CHE", 2),
		}},
		&units.Layer{Name: "nuts2", CRS: ProjectCRS, Features: []units.Feature{
			Unit(t, "IE04", "IRL", 0), Unit(t, "FR10", "FRA", 1), Unit(t, "FRB0", "FRA", 1), Unit(t, "IE05", "IRL", 0),
		}},
	)
	if err != nil {
		t.Fatalf("failed to create nuts.gpkg: %v", err)
	}

	err = vector.WriteGPKG(ctx, filepath.Join(tmpDir, "gadm.gpkg"),
		&units.Layer{Name: "gadm0", CRS: ProjectCRS, Features: []units.Feature{Unit(t, "CHE", "CHE", 2)}},
		&units.Layer{Name: "gadm1", CRS: ProjectCRS, Features: []units.Feature{
			Unit(t, "CHE.1_1", "CHE", 2), Unit(t, "CHE.2_1", "CHE", 2),
		}},
	)
	if err != nil {
		t.Fatalf("failed to create gadm.gpkg: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "unitremix.yaml"), []byte(ProjectConfig), 0644); err != nil {
		t.Fatalf("failed to create unitremix.yaml: %v", err)
	}

	return tmpDir
}

// ReadOutput reads back a single-layer output file written by remix.
func ReadOutput(t *testing.T, path string) *units.Layer {
	t.Helper()
	r := vector.NewReader()
	names, err := r.ListLayers(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to list layers of %s: %v", path, err)
	}
	if len(names) != 1 {
		t.Fatalf("expected one layer in %s, got %v", path, names)
	}
	layer, err := r.ReadLayer(context.Background(), path, names[0])
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return layer
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
