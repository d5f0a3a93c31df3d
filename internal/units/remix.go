package units

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Remixer runs the remix pipeline for one analysis layer.
type Remixer struct {
	Reader     DatasetReader
	Writer     LayerWriter
	Resolve    Resolver
	Collisions CollisionPolicy
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Request describes one invocation.
type Request struct {
	NUTSPath    string
	GADMPath    string
	OutputPath  string
	LayerName   string
	LayerConfig LayerConfig
	// Countries are the display names that must be present in the result.
	Countries []string
	// DryRun runs every check but skips the writer.
	DryRun bool
}

// Result summarizes a successful run.
type Result struct {
	Layer     string        `json:"layer"`
	CRS       CRS           `json:"crs"`
	Features  int           `json:"features"`
	Countries int           `json:"countries"`
	Output    string        `json:"output"`
	Written   bool          `json:"written"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Sources   int           `json:"source_layers"`
	// Assigned lists the configured countries in build order.
	Assigned []string `json:"assigned"`
}

// Remix validates the request against the datasets, builds the unit layer
// and writes it. Nothing is written unless every check passes.
func (r *Remixer) Remix(ctx context.Context, req Request) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("layer", req.LayerName)
	start := time.Now()

	if r.Reader == nil || r.Resolve == nil {
		return nil, fmt.Errorf("remixer requires a reader and a resolver")
	}
	if !req.DryRun && r.Writer == nil {
		return nil, fmt.Errorf("remixer requires a writer")
	}

	// The assignment check needs no input data, so it runs before any I/O.
	if err := ValidateAssignment(req.Countries, req.LayerConfig, req.LayerName); err != nil {
		return nil, err
	}

	logger.Debug("loading source layers", "nuts", req.NUTSPath, "gadm", req.GADMPath)
	sources, err := LoadSources(ctx, r.Reader, req.NUTSPath, req.GADMPath, r.Collisions, logger)
	if err != nil {
		return nil, withLayer(err, req.LayerName)
	}

	crs, err := ValidateCRS(sources)
	if err != nil {
		return nil, withLayer(err, req.LayerName)
	}
	logger.Debug("source layers consistent", "count", sources.Len(), "crs", crs.String())

	layer, err := Build(req.LayerConfig, sources, crs, r.Resolve)
	if err != nil {
		return nil, withLayer(err, req.LayerName)
	}
	layer.Name = req.LayerName
	logger.Debug("built unit layer", "features", layer.Len())

	if err := ValidateCompleteness(layer, req.LayerName, req.Countries, r.Resolve); err != nil {
		return nil, err
	}

	if req.LayerName == ContinentalLayer {
		layer, err = Continental(layer)
		if err != nil {
			return nil, withLayer(err, req.LayerName)
		}
		logger.Debug("dissolved continental unit")
	}

	result := &Result{
		Layer:     req.LayerName,
		CRS:       crs,
		Features:  layer.Len(),
		Countries: len(layer.CountryCodes()),
		Output:    req.OutputPath,
		Sources:   sources.Len(),
		Assigned:  req.LayerConfig.Countries(),
	}

	if !req.DryRun {
		if err := r.Writer.WriteLayer(ctx, layer, req.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to write layer %s to %s: %w", req.LayerName, req.OutputPath, err)
		}
		result.Written = true
	}

	result.Elapsed = time.Since(start)
	logger.Info("remixed units",
		"features", result.Features,
		"countries", result.Countries,
		"output", req.OutputPath,
		"written", result.Written,
		"elapsed", result.Elapsed.Round(time.Millisecond))

	return result, nil
}
