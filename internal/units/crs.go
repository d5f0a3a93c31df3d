package units

import (
	"strconv"
	"strings"
)

// CRS identifies a coordinate reference system, normalized to
// "AUTHORITY:CODE" where possible (e.g. "EPSG:3035").
type CRS string

// WGS84 is the geographic CRS GeoJSON assumes when none is declared.
const WGS84 CRS = "EPSG:4326"

// ParseCRS normalizes the spellings of a CRS found in vector files.
// Unrecognized strings are returned trimmed but otherwise verbatim, so two
// layers compare equal only if they declare the same thing.
func ParseCRS(s string) CRS {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	upper := strings.ToUpper(s)

	switch upper {
	case "OGC:CRS84", "URN:OGC:DEF:CRS:OGC:1.3:CRS84", "URN:OGC:DEF:CRS:OGC::CRS84":
		return WGS84
	}

	// urn:ogc:def:crs:EPSG::3035 and urn:ogc:def:crs:EPSG:9.9.1:3035
	if strings.HasPrefix(upper, "URN:OGC:DEF:CRS:") {
		parts := strings.Split(upper[len("URN:OGC:DEF:CRS:"):], ":")
		if len(parts) >= 2 {
			if c, ok := authorityCode(parts[0], parts[len(parts)-1]); ok {
				return c
			}
		}
		return CRS(s)
	}

	if auth, code, ok := strings.Cut(upper, ":"); ok {
		if c, ok := authorityCode(auth, code); ok {
			return c
		}
	}
	return CRS(s)
}

// NewCRS builds a CRS from an authority and numeric code.
func NewCRS(authority string, code int) CRS {
	return CRS(strings.ToUpper(strings.TrimSpace(authority)) + ":" + strconv.Itoa(code))
}

func authorityCode(auth, code string) (CRS, bool) {
	auth = strings.TrimSpace(auth)
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if auth == "" || err != nil {
		return "", false
	}
	return NewCRS(auth, n), true
}

// EPSG returns the EPSG code of the CRS, if it is an EPSG CRS.
func (c CRS) EPSG() (int, bool) {
	auth, code, ok := strings.Cut(string(c), ":")
	if !ok || auth != "EPSG" {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c CRS) String() string {
	if c == "" {
		return "<none>"
	}
	return string(c)
}
