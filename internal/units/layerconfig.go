package units

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Assignment maps one country to the source layer its units come from.
type Assignment struct {
	Country string
	Source  string
}

// LayerConfig is the ordered country -> source layer mapping of one
// analysis layer. Order matters: it is the order features appear in the
// built layer.
type LayerConfig []Assignment

// Source returns the source layer assigned to country.
func (c LayerConfig) Source(country string) (string, bool) {
	for _, a := range c {
		if a.Country == country {
			return a.Source, true
		}
	}
	return "", false
}

// Countries returns the configured countries in order.
func (c LayerConfig) Countries() []string {
	out := make([]string, 0, len(c))
	for _, a := range c {
		out = append(out, a.Country)
	}
	return out
}

// With returns a copy of c where country is assigned to source. An existing
// assignment keeps its position; a new one is appended.
func (c LayerConfig) With(country, source string) LayerConfig {
	out := make(LayerConfig, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].Country == country {
			out[i].Source = source
			return out
		}
	}
	return append(out, Assignment{Country: country, Source: source})
}

// ParseAssignment parses "Country=source".
func ParseAssignment(s string) (Assignment, error) {
	country, source, ok := strings.Cut(s, "=")
	country = strings.TrimSpace(country)
	source = strings.TrimSpace(source)
	if !ok || country == "" || source == "" {
		return Assignment{}, fmt.Errorf("invalid assignment %q, expected Country=source", s)
	}
	return Assignment{Country: country, Source: source}, nil
}

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (c *LayerConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*c = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: layer config must be a mapping of country to source layer", node.Line)
	}

	out := make(LayerConfig, 0, len(node.Content)/2)
	seen := make(map[string]int)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var country, source string
		if err := keyNode.Decode(&country); err != nil {
			return fmt.Errorf("line %d: invalid country: %w", keyNode.Line, err)
		}
		if err := valNode.Decode(&source); err != nil {
			return fmt.Errorf("line %d: invalid source layer for %q: %w", valNode.Line, country, err)
		}
		if line, dup := seen[country]; dup {
			return fmt.Errorf("line %d: country %q already assigned on line %d", keyNode.Line, country, line)
		}
		seen[country] = keyNode.Line
		out = append(out, Assignment{Country: country, Source: source})
	}
	*c = out
	return nil
}

// MarshalYAML encodes the config as an ordered mapping.
func (c LayerConfig) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, a := range c {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Country},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Source},
		)
	}
	return node, nil
}
