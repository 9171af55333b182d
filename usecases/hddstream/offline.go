//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import (
	"context"

	"github.com/cytoclust/chronoclust/entities/microcluster"
)

// Snapshot is the offline-handoff payload: every potential-core
// microcluster as a pseudo-point with its core flag, plus the scalar
// parameters the offline step needs. Epsilon here is upsilon, the
// widened offline radius, not the online radius threshold.
type Snapshot struct {
	Points         map[uint64]microcluster.PseudoPoint
	Dimensionality int
	Epsilon        float64
	Delta          float64
	Pi             int
	Mu             float64
	K              float64
}

// Cluster is one final cluster as grouped by the offline step. The
// engine stores what it gets back verbatim.
type Cluster struct {
	Members []microcluster.PseudoPoint
}

// Centroid is the weight-averaged centroid over all member
// pseudo-points, used to track clusters across timepoints.
func (c Cluster) Centroid() []float64 {
	if len(c.Members) == 0 {
		return nil
	}

	centroid := make([]float64, len(c.Members[0].Values))
	var total float64
	for _, member := range c.Members {
		for i, v := range member.Values {
			centroid[i] += v * member.Weight
		}
		total += member.Weight
	}
	if total == 0 {
		return centroid
	}
	for i := range centroid {
		centroid[i] /= total
	}
	return centroid
}

// Clusterer groups a snapshot of potential-core microclusters into
// final clusters. Implementations are free to use any density-based
// strategy; errors are propagated to the caller without retry.
type Clusterer interface {
	Cluster(ctx context.Context, snapshot Snapshot) ([]Cluster, error)
}
