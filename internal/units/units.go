// Package units builds the analysis units of an energy-system model by
// remixing NUTS and GADM boundary layers.
//
// A run loads every layer of both datasets, checks that they share one CRS,
// checks the per-country layer assignment against the required countries,
// concatenates the assigned features, checks that every required country is
// present and, for the continental layer, dissolves the result into a single
// region before handing it to a writer.
package units

import (
	"context"

	"github.com/peterstace/simplefeatures/geom"
)

// ContinentalLayer is the analysis layer that is dissolved into one region.
const ContinentalLayer = "continental"

// Feature is one administrative unit with its boundary.
type Feature struct {
	ID          string
	CountryCode string // ISO 3166 alpha-3
	Name        string
	Type        string
	Proper      int // 1 if the unit is a proper administrative unit, else 0
	Geometry    geom.Geometry
}

// Layer is an ordered collection of features sharing one CRS.
type Layer struct {
	Name     string
	CRS      CRS
	Features []Feature
}

// Len returns the number of features in the layer.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Features)
}

// CountryCodes returns the distinct country codes of the layer in order of
// first appearance.
func (l *Layer) CountryCodes() []string {
	if l == nil {
		return nil
	}
	seen := make(map[string]bool)
	var codes []string
	for _, f := range l.Features {
		if !seen[f.CountryCode] {
			seen[f.CountryCode] = true
			codes = append(codes, f.CountryCode)
		}
	}
	return codes
}

// Resolver maps a country display name to its alpha-3 code.
// It must be pure: the same name always yields the same code or error.
type Resolver func(name string) (string, error)

// DatasetReader enumerates and reads the named layers of a dataset file.
type DatasetReader interface {
	ListLayers(ctx context.Context, path string) ([]string, error)
	ReadLayer(ctx context.Context, path, name string) (*Layer, error)
}

// LayerWriter persists a single layer to a file, replacing any file already
// at that path.
type LayerWriter interface {
	WriteLayer(ctx context.Context, layer *Layer, path string) error
}
