package units

import "fmt"

// Build concatenates, in config order, the features of each country taken
// from its assigned source layer. Source order is kept within a country.
// A country whose source holds no matching feature contributes nothing;
// ValidateCompleteness reports that.
func Build(cfg LayerConfig, layers *LayerSet, crs CRS, resolve Resolver) (*Layer, error) {
	out := &Layer{CRS: crs}

	for _, a := range cfg {
		code, err := lookup(resolve, a.Country)
		if err != nil {
			return nil, err
		}

		source, ok := layers.Get(a.Source)
		if !ok {
			return nil, &ConfigError{
				Check:   CheckLayerConfig,
				Message: fmt.Sprintf("country %q is assigned to source layer %q, which no dataset provides", a.Country, a.Source),
			}
		}

		for _, f := range source.Features {
			if f.CountryCode == code {
				out.Features = append(out.Features, f)
			}
		}
	}

	return out, nil
}
