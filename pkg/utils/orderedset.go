package utils

// OrderedSet is a string set that preserves first-seen insertion order.
// Deduplication that must keep "first-seen order" uses this type rather than
// relying on map iteration order.
type OrderedSet struct {
	values []string
	index  map[string]struct{}
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{index: make(map[string]struct{})}
}

// Add inserts v if not already present. Returns true if v was added.
func (s *OrderedSet) Add(v string) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is in the set.
func (s *OrderedSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct values.
func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns the values in insertion order. The returned slice is a copy.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
