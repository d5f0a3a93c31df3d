package units

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateCRS checks that every layer declares the same CRS as the first one
// and returns that CRS. An empty set is consistent and yields "".
func ValidateCRS(layers *LayerSet) (CRS, error) {
	var (
		crs      CRS
		firstKey string
		seen     bool
		err      error
	)
	layers.Each(func(key string, layer *Layer) {
		if err != nil {
			return
		}
		if !seen {
			seen, firstKey, crs = true, key, layer.CRS
			return
		}
		if layer.CRS != crs {
			err = &ConfigError{
				Check: CheckCRS,
				Message: fmt.Sprintf("inconsistent CRS: layer %q has %s but layer %q has %s, source layers must match",
					key, layer.CRS, firstKey, crs),
			}
		}
	})
	if err != nil {
		return "", err
	}
	return crs, nil
}

// ValidateAssignment checks that every required country has an entry in the
// layer config. Entries for other countries are allowed.
func ValidateAssignment(required []string, cfg LayerConfig, layerName string) error {
	var missing []string
	for _, country := range required {
		if _, ok := cfg.Source(country); !ok {
			missing = append(missing, country)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{
			Layer:   layerName,
			Check:   CheckLayerConfig,
			Message: fmt.Sprintf("layer is not correctly defined, no source layer for: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// ValidateCompleteness checks that every required country has at least one
// feature in the built layer.
func ValidateCompleteness(layer *Layer, layerName string, required []string, resolve Resolver) error {
	present := make(map[string]bool)
	if layer != nil {
		for _, f := range layer.Features {
			present[f.CountryCode] = true
		}
	}

	var missing []string
	for _, country := range required {
		code, err := lookup(resolve, country)
		if err != nil {
			return err
		}
		if !present[code] {
			missing = append(missing, fmt.Sprintf("%s (%s)", country, code))
		}
	}
	if len(missing) > 0 {
		return &DataError{
			Layer:   layerName,
			Check:   CheckCompleteness,
			Message: fmt.Sprintf("countries are missing in layer: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

func lookup(resolve Resolver, country string) (string, error) {
	code, err := resolve(country)
	if err != nil {
		var le *LookupError
		if errors.As(err, &le) {
			return "", le
		}
		return "", &LookupError{Name: country, Err: err}
	}
	return code, nil
}
