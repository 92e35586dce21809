package domain

// Represents the optimized visiting order for a set of addresses.
// Length is the tour length in kilometres, Links holds one map-navigation URL
// per chunk of the tour, and Addresses lists every address in visiting order,
// including the pinned start and end.
// It is immutable planning data and contains no side effects.
type ShortestPath struct {
	Length    float64
	Links     []string
	Addresses []Address
}
