package units

import "fmt"

// Names of the checks that can fail a run. They appear in error messages so
// the failing stage is obvious from the process output.
const (
	CheckCRS          = "crs"
	CheckLayerConfig  = "layer-config"
	CheckSources      = "sources"
	CheckCompleteness = "completeness"
	CheckContinental  = "continental"
	CheckRecord       = "record"
)

// ConfigError reports configuration that is inconsistent with the inputs:
// mismatched CRS across source layers, a required country without a layer
// assignment, or an assignment to a layer no dataset provides.
type ConfigError struct {
	Layer   string // analysis layer under construction, if known
	Check   string
	Message string
}

func (e *ConfigError) Error() string {
	return formatError("configuration error", e.Layer, e.Check, e.Message)
}

// DataError reports inputs that do not contain what the configuration asks
// for, or records that do not have the required shape.
type DataError struct {
	Layer   string
	Check   string
	Message string
}

func (e *DataError) Error() string {
	return formatError("data error", e.Layer, e.Check, e.Message)
}

// LookupError reports a country display name the resolver does not know.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("country lookup failed for %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("country lookup failed for %q", e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func formatError(kind, layer, check, msg string) string {
	prefix := kind
	if check != "" {
		prefix = fmt.Sprintf("%s (%s)", kind, check)
	}
	if layer != "" {
		return fmt.Sprintf("layer %s: %s: %s", layer, prefix, msg)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// withLayer fills in the analysis layer name on errors raised by components
// that do not know it.
func withLayer(err error, layer string) error {
	switch e := err.(type) {
	case *ConfigError:
		if e.Layer == "" {
			e.Layer = layer
		}
	case *DataError:
		if e.Layer == "" {
			e.Layer = layer
		}
	}
	return err
}
