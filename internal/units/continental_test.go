package units

import (
	"testing"

	"github.com/leapstack-labs/unitremix/internal/testutil"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinental_DissolvesIntoOneUnit(t *testing.T) {
	in := layer("continental", "EPSG:3035",
		feature(t, "IE", "IRL", 0),
		feature(t, "FR", "FRA", 2),
		feature(t, "CH", "CHE", 4),
	)

	got, err := Continental(in)
	require.NoError(t, err)

	require.Equal(t, 1, got.Len())
	f := got.Features[0]
	assert.Equal(t, ContinentID, f.ID)
	assert.Equal(t, ContinentCode, f.CountryCode)
	assert.Equal(t, ContinentName, f.Name)
	assert.Equal(t, ContinentType, f.Type)
	assert.Equal(t, ContinentProper, f.Proper)
	assert.Equal(t, ContinentalLayer, got.Name)
	assert.Equal(t, CRS("EPSG:3035"), got.CRS)
	assert.InDelta(t, 3.0, f.Geometry.Area(), 1e-9)

	// Every input lies inside the union.
	for _, part := range in.Features {
		u, err := geom.Union(part.Geometry, f.Geometry)
		require.NoError(t, err)
		assert.InDelta(t, f.Geometry.Area(), u.Area(), 1e-9, "input %s must be covered", part.ID)
	}
}

func TestContinental_AdjacentUnitsMerge(t *testing.T) {
	in := layer("continental", "EPSG:3035",
		feature(t, "A", "IRL", 0),
		feature(t, "B", "FRA", 1),
		feature(t, "C", "DEU", 2),
		feature(t, "D", "CHE", 3),
		feature(t, "E", "CHE", 4),
	)

	got, err := Continental(in)
	require.NoError(t, err)

	want := testutil.MustWKT(t, "POLYGON((0 0,5 0,5 1,0 1,0 0))")
	sym, err := geom.SymmetricDifference(got.Features[0].Geometry, want)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sym.Area(), 1e-9)
}

func TestContinental_SingleFeature(t *testing.T) {
	in := layer("continental", WGS84, feature(t, "IE", "IRL", 0))

	got, err := Continental(in)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, ContinentID, got.Features[0].ID)
	assert.InDelta(t, 1.0, got.Features[0].Geometry.Area(), 1e-9)
}

func TestContinental_EmptyLayer(t *testing.T) {
	_, err := Continental(layer("continental", WGS84))

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, CheckContinental, dataErr.Check)
}

func TestContinental_LeavesInputUntouched(t *testing.T) {
	in := layer("continental", WGS84, feature(t, "IE", "IRL", 0), feature(t, "FR", "FRA", 1))

	_, err := Continental(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"IE", "FR"}, featureIDs(in))
	assert.Equal(t, "IRL", in.Features[0].CountryCode)
}
