package units

// LayerSet is an ordered, keyed collection of source layers.
// Keys keep the position of their first insertion.
type LayerSet struct {
	keys   []string
	layers map[string]*Layer
}

// NewLayerSet returns an empty set.
func NewLayerSet() *LayerSet {
	return &LayerSet{layers: make(map[string]*Layer)}
}

// Put stores layer under key. If the key is already present the new layer
// replaces the old one in place and Put reports true.
func (s *LayerSet) Put(key string, layer *Layer) (replaced bool) {
	if _, ok := s.layers[key]; ok {
		s.layers[key] = layer
		return true
	}
	s.keys = append(s.keys, key)
	s.layers[key] = layer
	return false
}

// Get returns the layer stored under key.
func (s *LayerSet) Get(key string) (*Layer, bool) {
	l, ok := s.layers[key]
	return l, ok
}

// Keys returns the layer keys in insertion order.
func (s *LayerSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of layers.
func (s *LayerSet) Len() int {
	return len(s.keys)
}

// Each calls fn for every layer in insertion order.
func (s *LayerSet) Each(fn func(key string, layer *Layer)) {
	for _, k := range s.keys {
		fn(k, s.layers[k])
	}
}
