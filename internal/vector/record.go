package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/peterstace/simplefeatures/geom"
)

// Attribute names of the unit schema.
const (
	ColID          = "id"
	ColCountryCode = "country_code"
	ColName        = "name"
	ColType        = "type"
	ColProper      = "proper"
)

// recordError builds the DataError raised for a malformed source record.
func recordError(layer string, row int, format string, args ...any) error {
	return &units.DataError{
		Check:   units.CheckRecord,
		Message: fmt.Sprintf("source layer %q, feature %d: %s", layer, row, fmt.Sprintf(format, args...)),
	}
}

// toFeature converts a loosely typed attribute row into a Feature, rejecting
// shapes the unit schema does not allow.
func toFeature(layer string, row int, attrs map[string]any, g geom.Geometry, hasGeom bool) (units.Feature, error) {
	var f units.Feature

	if !hasGeom {
		return f, recordError(layer, row, "missing geometry")
	}
	switch g.Type() {
	case geom.TypePolygon, geom.TypeMultiPolygon:
	default:
		return f, recordError(layer, row, "geometry must be Polygon or MultiPolygon, got %s", g.Type())
	}
	f.Geometry = g

	var err error
	if f.ID, err = requiredString(attrs, ColID); err != nil {
		return f, recordError(layer, row, "%v", err)
	}
	if f.CountryCode, err = requiredString(attrs, ColCountryCode); err != nil {
		return f, recordError(layer, row, "%v", err)
	}
	if f.Name, err = optionalString(attrs, ColName); err != nil {
		return f, recordError(layer, row, "%v", err)
	}
	if f.Type, err = optionalString(attrs, ColType); err != nil {
		return f, recordError(layer, row, "%v", err)
	}
	if f.Proper, err = flag(attrs, ColProper); err != nil {
		return f, recordError(layer, row, "%v", err)
	}
	return f, nil
}

// attributes is the inverse of toFeature, in schema column order.
func attributes(f units.Feature) []any {
	return []any{f.ID, f.CountryCode, f.Name, f.Type, f.Proper}
}

func requiredString(attrs map[string]any, col string) (string, error) {
	v, ok := attrs[col]
	if !ok {
		return "", fmt.Errorf("missing column %q", col)
	}
	s, err := asString(col, v)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("column %q is empty", col)
	}
	return s, nil
}

func optionalString(attrs map[string]any, col string) (string, error) {
	v, ok := attrs[col]
	if !ok {
		return "", fmt.Errorf("missing column %q", col)
	}
	if v == nil {
		return "", nil
	}
	return asString(col, v)
}

func asString(col string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return "", fmt.Errorf("column %q is null", col)
	default:
		return "", fmt.Errorf("column %q must be text, got %T", col, v)
	}
}

// flag coerces the boolean-like proper column to 0 or 1.
func flag(attrs map[string]any, col string) (int, error) {
	v, ok := attrs[col]
	if !ok {
		return 0, fmt.Errorf("missing column %q", col)
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int64:
		return flagInt(col, x)
	case int:
		return flagInt(col, int64(x))
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("column %q must be 0 or 1, got %v", col, x)
		}
		return flagInt(col, int64(x))
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true":
			return 1, nil
		case "0", "false":
			return 0, nil
		}
		if n, err := strconv.ParseFloat(x, 64); err == nil && n == math.Trunc(n) {
			return flagInt(col, int64(n))
		}
		return 0, fmt.Errorf("column %q must be 0 or 1, got %q", col, x)
	case nil:
		return 0, fmt.Errorf("column %q is null", col)
	default:
		return 0, fmt.Errorf("column %q must be 0 or 1, got %T", col, v)
	}
}

func flagInt(col string, n int64) (int, error) {
	if n != 0 && n != 1 {
		return 0, fmt.Errorf("column %q must be 0 or 1, got %d", col, n)
	}
	return int(n), nil
}
