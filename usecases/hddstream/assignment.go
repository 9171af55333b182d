//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import (
	"github.com/cytoclust/chronoclust/entities/microcluster"
)

// nearestCandidate selects the candidate with the smallest projected
// distance from its current (unmerged) centroid to the point. When
// capDimensionality is set, candidates whose projected dimensionality
// would exceed Pi after tentatively absorbing the point are skipped;
// the outlier collection is searched without that pre-filter. Ties are
// broken by insertion order: the first equally close candidate wins.
func nearestCandidate(point []float64, candidates []*microcluster.Microcluster, params Params, capDimensionality bool) int {
	best := -1
	var bestDist float64

	for i, mc := range candidates {
		if capDimensionality {
			tentative := mc.CopyWithPoint(point, params.DeltaSq, params.K)
			if tentative.PreferredDimensions() > params.Pi {
				continue
			}
		}

		dist := mc.ProjectedDistanceTo(point)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	return best
}

// tryAssign attempts to place the point into the best-fitting candidate.
// The decision runs on a tentative clone so that a failed radius check
// leaves every microcluster untouched; only a geometrically safe merge
// is committed to the real cluster.
func tryAssign(point []float64, timestamp int64, candidates []*microcluster.Microcluster, params Params, capDimensionality bool) (*microcluster.Microcluster, bool) {
	idx := nearestCandidate(point, candidates, params, capDimensionality)
	if idx < 0 {
		return nil, false
	}

	target := candidates[idx]
	tentative := target.CopyWithPoint(point, params.DeltaSq, params.K)
	if tentative.ProjectedRadiusSquared() > params.EpsilonSq {
		return nil, false
	}

	target.AddPoint(point, timestamp)
	target.UpdatePreferredDimensions(params.DeltaSq, params.K)

	return target, true
}
