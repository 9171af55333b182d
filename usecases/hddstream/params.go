//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

// Params is the per-batch threshold snapshot. It is derived once per
// batch from the immutable config plus the batch shape, then passed by
// value into the assignment and lifecycle operations, so no routing
// decision ever observes a half-updated threshold set.
type Params struct {
	Dimensionality int

	// Epsilon is the online radius threshold, EpsilonSq its square.
	Epsilon   float64
	EpsilonSq float64

	// Upsilon is the radius handed to the offline clustering step.
	Upsilon float64

	// Delta is the preferred-dimension variance threshold, DeltaSq its
	// square, which is what the variance comparison actually uses.
	Delta   float64
	DeltaSq float64

	// Beta scales Mu into the potential-core weight threshold.
	Beta float64

	// K is the preference weight for preferred dimensions.
	K float64

	// Lambda is the decay rate per elapsed day.
	Lambda float64

	// Pi caps projected dimensionality for potential-core clusters.
	Pi int

	// Mu is the density threshold, scaled by the current batch size.
	Mu float64

	// Omicron is the outlier survival weight, scaled by the previous
	// batch size.
	Omicron float64
}

// CoreWeightThreshold is the decayed weight a microcluster needs to
// qualify as potential-core. The boundary is inclusive.
func (p Params) CoreWeightThreshold() float64 {
	return p.Beta * p.Mu
}
