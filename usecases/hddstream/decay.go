//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import "math"

// DecayFactor returns the multiplier 2^(-lambda*interval) applied to a
// microcluster's statistics after interval elapsed days. An interval of
// zero yields exactly 1, and factors compose: the factor for d1+d2
// equals the product of the factors for d1 and d2.
func DecayFactor(lambda, intervalDays float64) float64 {
	return math.Exp2(-lambda * intervalDays)
}
