// Package match scores roles against a candidate profile and ranks the
// results. Scoring is pure and deterministic: the same profile and role
// always produce the same result, with no I/O and no randomness.
package match

// Weights distributes the final score across the four scoring components.
// They are expected to sum to 1.0; DefaultWeights satisfies that.
type Weights struct {
	Skills         float64
	Experience     float64
	Location       float64
	WorkPreference float64
}

// DefaultWeights returns the standard weighting: skills dominate, experience
// second, location and work preference share the remainder.
func DefaultWeights() Weights {
	return Weights{
		Skills:         0.4,
		Experience:     0.3,
		Location:       0.15,
		WorkPreference: 0.15,
	}
}
