package vector

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/peterstace/simplefeatures/geom"
)

// crs84URN is how GeoJSON writers name WGS84 with lon/lat axis order.
const crs84URN = "urn:ogc:def:crs:OGC:1.3:CRS84"

type namedCRS struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

type rawCollection struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	CRS      json.RawMessage `json:"crs"`
	Features []rawFeature    `json:"features"`
}

type rawFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// outCollection always carries a crs member. A null member marks an
// undefined CRS, which an absent member cannot: readers assume WGS84 then.
type outCollection struct {
	Type     string       `json:"type"`
	Name     string       `json:"name,omitempty"`
	CRS      *namedCRS    `json:"crs"`
	Features []outFeature `json:"features"`
}

type outFeature struct {
	Type       string        `json:"type"`
	Properties outProperties `json:"properties"`
	Geometry   geom.Geometry `json:"geometry"`
}

type outProperties struct {
	ID          string `json:"id"`
	CountryCode string `json:"country_code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Proper      int    `json:"proper"`
}

// geoJSONLayerName is the single layer name of a GeoJSON file: its stem.
func geoJSONLayerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readGeoJSON(path string) (*units.Layer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: dataset paths come from configuration
	if err != nil {
		return nil, err
	}
	name := geoJSONLayerName(path)
	layer, err := decodeGeoJSON(data, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layer, nil
}

func decodeGeoJSON(data []byte, name string) (*units.Layer, error) {
	var fc rawCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected a FeatureCollection, got %q", fc.Type)
	}

	crs, err := decodeCRSMember(fc.CRS)
	if err != nil {
		return nil, err
	}
	layer := &units.Layer{Name: name, CRS: crs}

	layer.Features = make([]units.Feature, 0, len(fc.Features))
	for i, rf := range fc.Features {
		if rf.Type != "Feature" {
			return nil, recordError(name, i, "expected a Feature, got %q", rf.Type)
		}

		var (
			g       geom.Geometry
			hasGeom bool
		)
		if raw := bytes.TrimSpace(rf.Geometry); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			var err error
			g, err = geom.UnmarshalGeoJSON(raw, geom.NoValidate{})
			if err != nil {
				return nil, recordError(name, i, "invalid geometry: %v", err)
			}
			hasGeom = true
		}

		f, err := toFeature(name, i, rf.Properties, g, hasGeom)
		if err != nil {
			return nil, err
		}
		layer.Features = append(layer.Features, f)
	}
	return layer, nil
}

// decodeCRSMember reads the legacy crs member: absent means WGS84, null
// means undefined.
func decodeCRSMember(raw json.RawMessage) (units.CRS, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return units.WGS84, nil
	case bytes.Equal(raw, []byte("null")):
		return "", nil
	}
	var m namedCRS
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("invalid crs member: %w", err)
	}
	if m.Properties.Name == "" {
		return units.WGS84, nil
	}
	return units.ParseCRS(m.Properties.Name), nil
}

func writeGeoJSON(w io.Writer, layer *units.Layer) error {
	out := outCollection{
		Type:     "FeatureCollection",
		Name:     layer.Name,
		CRS:      crsMember(layer.CRS),
		Features: make([]outFeature, 0, layer.Len()),
	}
	for _, f := range layer.Features {
		out.Features = append(out.Features, outFeature{
			Type: "Feature",
			Properties: outProperties{
				ID:          f.ID,
				CountryCode: f.CountryCode,
				Name:        f.Name,
				Type:        f.Type,
				Proper:      f.Proper,
			},
			Geometry: f.Geometry,
		})
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return bw.Flush()
}

func crsMember(crs units.CRS) *namedCRS {
	if crs == "" {
		return nil
	}
	m := &namedCRS{Type: "name"}
	switch code, ok := crs.EPSG(); {
	case ok && code == 4326:
		m.Properties.Name = crs84URN
	case ok:
		m.Properties.Name = "urn:ogc:def:crs:EPSG::" + strconv.Itoa(code)
	default:
		m.Properties.Name = string(crs)
	}
	return m
}
