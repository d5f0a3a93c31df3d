package testutil

import (
	"fmt"
	"testing"

	"github.com/peterstace/simplefeatures/geom"
)

// MustWKT parses a WKT geometry or fails the test.
func MustWKT(t testing.TB, wkt string) geom.Geometry {
	t.Helper()
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		t.Fatalf("invalid WKT %q: %v", wkt, err)
	}
	return g
}

// Square returns the axis-aligned square polygon with lower-left corner
// (x, y) and the given side length.
func Square(t testing.TB, x, y, side float64) geom.Geometry {
	t.Helper()
	return MustWKT(t, fmt.Sprintf("POLYGON((%[1]g %[2]g,%[3]g %[2]g,%[3]g %[4]g,%[1]g %[4]g,%[1]g %[2]g))",
		x, y, x+side, y+side))
}
