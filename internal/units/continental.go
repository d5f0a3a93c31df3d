package units

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// Attributes of the single continental unit.
const (
	ContinentID     = "EUR"
	ContinentCode   = "EUR"
	ContinentName   = "Europe"
	ContinentType   = "continent"
	ContinentProper = 1
)

// Continental dissolves every geometry of layer into one feature carrying
// the continental attributes. The input layer is left untouched.
// An empty layer has no union and fails with a DataError.
func Continental(layer *Layer) (*Layer, error) {
	if layer.Len() == 0 {
		return nil, &DataError{
			Check:   CheckContinental,
			Message: "cannot dissolve an empty layer into a continental unit",
		}
	}

	geoms := make([]geom.Geometry, len(layer.Features))
	for i, f := range layer.Features {
		geoms[i] = f.Geometry
	}

	union, err := dissolve(geoms)
	if err != nil {
		return nil, &DataError{
			Check:   CheckContinental,
			Message: fmt.Sprintf("failed to dissolve %d geometries: %v", len(geoms), err),
		}
	}

	return &Layer{
		Name: ContinentalLayer,
		CRS:  layer.CRS,
		Features: []Feature{{
			ID:          ContinentID,
			CountryCode: ContinentCode,
			Name:        ContinentName,
			Type:        ContinentType,
			Proper:      ContinentProper,
			Geometry:    union,
		}},
	}, nil
}

// dissolve unions geometries pairwise, level by level, so each overlay works
// on inputs of similar size.
func dissolve(geoms []geom.Geometry) (geom.Geometry, error) {
	level := geoms
	for len(level) > 1 {
		next := make([]geom.Geometry, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			u, err := geom.Union(level[i], level[i+1])
			if err != nil {
				return geom.Geometry{}, err
			}
			next = append(next, u)
		}
		level = next
	}
	return level[0], nil
}
