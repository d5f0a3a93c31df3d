package units

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/leapstack-labs/unitremix/internal/testutil"
)

// memDataset is an in-memory dataset with ordered layers.
type memDataset []*Layer

// memReader implements DatasetReader over in-memory datasets keyed by path.
type memReader struct {
	datasets map[string]memDataset
	calls    int
}

func (r *memReader) ListLayers(_ context.Context, path string) ([]string, error) {
	r.calls++
	ds, ok := r.datasets[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	names := make([]string, 0, len(ds))
	for _, l := range ds {
		names = append(names, l.Name)
	}
	return names, nil
}

func (r *memReader) ReadLayer(_ context.Context, path, name string) (*Layer, error) {
	r.calls++
	for _, l := range r.datasets[path] {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("layer %q not found in %s", name, path)
}

// memWriter implements LayerWriter by keeping the written layers.
type memWriter struct {
	written map[string]*Layer
	err     error
}

func (w *memWriter) WriteLayer(_ context.Context, layer *Layer, path string) error {
	if w.err != nil {
		return w.err
	}
	if w.written == nil {
		w.written = make(map[string]*Layer)
	}
	w.written[path] = layer
	return nil
}

var testCodes = map[string]string{
	"ireland":     "IRL",
	"france":      "FRA",
	"switzerland": "CHE",
	"germany":     "DEU",
}

func testResolver(name string) (string, error) {
	if code, ok := testCodes[strings.ToLower(name)]; ok {
		return code, nil
	}
	return "", fmt.Errorf("unknown country %q", name)
}

// feature builds a unit square feature at x.
func feature(t *testing.T, id, code string, x float64) Feature {
	t.Helper()
	return Feature{ID: id, CountryCode: code, Name: id, Type: "region", Proper: 1, Geometry: testutil.Square(t, x, 0, 1)}
}

func layer(name string, crs CRS, features ...Feature) *Layer {
	return &Layer{Name: name, CRS: crs, Features: features}
}

func featureIDs(l *Layer) []string {
	ids := make([]string, 0, l.Len())
	for _, f := range l.Features {
		ids = append(ids, f.ID)
	}
	return ids
}
