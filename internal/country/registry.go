// Package country resolves country display names to ISO 3166-1 alpha-3
// codes. Codes and English short names come from biter777/countries; the
// spellings found in boundary datasets and older registries are layered on
// top.
package country

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/biter777/countries"
	"golang.org/x/text/cases"
)

// ErrUnknownCountry is returned for names the registry cannot resolve.
var ErrUnknownCountry = errors.New("unknown country")

// Country is one ISO 3166-1 entry.
type Country struct {
	Alpha2  string `json:"alpha2"`
	Alpha3  string `json:"alpha3"`
	Numeric string `json:"numeric"`
	Name    string `json:"name"`
	// OtherNames are official, common and former spellings.
	OtherNames []string `json:"other_names,omitempty"`
}

// keys returns every spelling under which the country can be looked up.
func (c Country) keys() []string {
	keys := []string{c.Alpha2, c.Alpha3, c.Numeric, c.Name}
	return append(keys, c.OtherNames...)
}

// Registry looks up countries by code or name, ignoring case.
type Registry struct {
	countries []Country
	index     map[string]int
}

// New builds a registry from the ISO 3166-1 table plus aliases mapping extra
// display names to alpha-3 codes. An alias may name a code missing from the
// table (e.g. "Kosovo" -> "XKX"); it then resolves to a synthetic entry.
func New(aliases map[string]string) (*Registry, error) {
	return NewFromCountries(isoCountries(), aliases)
}

// isoCountries lists the officially assigned ISO 3166-1 codes with the
// extra spellings merged in. User-assigned codes (X?, 900-999) are left to
// aliases.
func isoCountries() []Country {
	var out []Country
	for _, code := range countries.All() {
		if !code.IsValid() {
			continue
		}
		alpha2, alpha3 := code.Alpha2(), code.Alpha3()
		if len(alpha2) != 2 || len(alpha3) != 3 || strings.HasPrefix(alpha2, "X") || code >= 900 {
			continue
		}
		out = append(out, Country{
			Alpha2:     alpha2,
			Alpha3:     alpha3,
			Numeric:    fmt.Sprintf("%03d", int(code)),
			Name:       code.String(),
			OtherNames: otherNames[alpha3],
		})
	}
	return out
}

// NewFromCountries builds a registry from an explicit table. Two entries
// sharing a spelling is an error.
func NewFromCountries(table []Country, aliases map[string]string) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}

	for _, c := range table {
		if len(c.Alpha3) != 3 {
			return nil, fmt.Errorf("country %q has invalid alpha-3 code %q", c.Name, c.Alpha3)
		}
		r.countries = append(r.countries, c)
		idx := len(r.countries) - 1
		for _, k := range c.keys() {
			if k == "" {
				continue
			}
			key := fold(k)
			if prev, ok := r.index[key]; ok && prev != idx {
				return nil, fmt.Errorf("name %q is ambiguous between %s and %s", k, r.countries[prev].Alpha3, c.Alpha3)
			}
			r.index[key] = idx
		}
	}

	// Sorted so that errors and synthetic entries do not depend on map order.
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		code := strings.ToUpper(strings.TrimSpace(aliases[name]))
		if len(code) != 3 {
			return nil, fmt.Errorf("alias %q has invalid alpha-3 code %q", name, aliases[name])
		}
		idx, ok := r.byAlpha3(code)
		if !ok {
			r.countries = append(r.countries, Country{Alpha3: code, Name: name})
			idx = len(r.countries) - 1
			r.index[fold(code)] = idx
		}
		key := fold(name)
		if prev, ok := r.index[key]; ok && prev != idx {
			return nil, fmt.Errorf("alias %q conflicts with %s", name, r.countries[prev].Alpha3)
		}
		r.index[key] = idx
	}

	return r, nil
}

func (r *Registry) byAlpha3(code string) (int, bool) {
	for i, c := range r.countries {
		if c.Alpha3 == code {
			return i, true
		}
	}
	return 0, false
}

// Lookup returns the country matching name.
func (r *Registry) Lookup(name string) (Country, error) {
	idx, ok := r.index[fold(name)]
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}
	return r.countries[idx], nil
}

// Alpha3 returns the alpha-3 code of name. Its signature matches
// units.Resolver.
func (r *Registry) Alpha3(name string) (string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return c.Alpha3, nil
}

// Countries returns every entry of the registry.
func (r *Registry) Countries() []Country {
	out := make([]Country, len(r.countries))
	copy(out, r.countries)
	return out
}

// fold normalizes a name for case-insensitive comparison.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
