package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCRS(t *testing.T) {
	tests := []struct {
		in   string
		want CRS
	}{
		{in: "", want: ""},
		{in: "EPSG:3035", want: "EPSG:3035"},
		{in: "epsg:3035", want: "EPSG:3035"},
		{in: " EPSG:4326 ", want: WGS84},
		{in: "urn:ogc:def:crs:OGC:1.3:CRS84", want: WGS84},
		{in: "OGC:CRS84", want: WGS84},
		{in: "urn:ogc:def:crs:EPSG::3035", want: "EPSG:3035"},
		{in: "urn:ogc:def:crs:EPSG:9.9.1:3035", want: "EPSG:3035"},
		{in: "ESRI:54009", want: "ESRI:54009"},
		{in: "+proj=longlat +datum=WGS84", want: "+proj=longlat +datum=WGS84"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCRS(tt.in))
		})
	}
}

func TestCRS_EPSG(t *testing.T) {
	code, ok := CRS("EPSG:3035").EPSG()
	assert.True(t, ok)
	assert.Equal(t, 3035, code)

	_, ok = CRS("ESRI:54009").EPSG()
	assert.False(t, ok)

	_, ok = CRS("").EPSG()
	assert.False(t, ok)
}

func TestCRS_String(t *testing.T) {
	assert.Equal(t, "<none>", CRS("").String())
	assert.Equal(t, "EPSG:3035", CRS("EPSG:3035").String())
	assert.Equal(t, CRS("EPSG:3035"), NewCRS("epsg", 3035))
}
