package units

import (
	"context"
	"fmt"
	"log/slog"
)

// CollisionPolicy decides what happens when both datasets contain a layer
// with the same key.
type CollisionPolicy int

const (
	// SecondSourceWins replaces the first dataset's layer with the second's.
	// The key keeps its original position in the set.
	SecondSourceWins CollisionPolicy = iota
	// RejectCollisions fails the load with a ConfigError.
	RejectCollisions
)

// LoadSources reads every layer of the first dataset, then every layer of
// the second, into one set. Key collisions are settled by policy.
func LoadSources(ctx context.Context, reader DatasetReader, first, second string, policy CollisionPolicy, logger *slog.Logger) (*LayerSet, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	set := NewLayerSet()
	origin := make(map[string]string)

	for _, path := range []string{first, second} {
		names, err := reader.ListLayers(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to list layers of %s: %w", path, err)
		}

		for _, name := range names {
			layer, err := reader.ReadLayer(ctx, path, name)
			if err != nil {
				return nil, fmt.Errorf("failed to read layer %s of %s: %w", name, path, err)
			}

			if prev, ok := origin[name]; ok && prev != path {
				if policy == RejectCollisions {
					return nil, &ConfigError{
						Check:   CheckSources,
						Message: fmt.Sprintf("layer %q exists in both %s and %s", name, prev, path),
					}
				}
				logger.Warn("source layer overridden by second dataset",
					"source_layer", name, "previous", prev, "dataset", path)
			}

			set.Put(name, layer)
			origin[name] = path
			logger.Debug("loaded source layer",
				"source_layer", name, "dataset", path, "features", layer.Len(), "crs", layer.CRS.String())
		}
	}

	return set, nil
}
