//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

// Package predecon groups potential-core microclusters into final
// clusters by density reachability in their preferred subspaces,
// following the PreDeCon scheme over microcluster pseudo-points.
package predecon

import (
	"context"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cytoclust/chronoclust/entities/microcluster"
	"github.com/cytoclust/chronoclust/usecases/hddstream"
)

type Clusterer struct {
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *Clusterer {
	return &Clusterer{logger: logger}
}

var _ hddstream.Clusterer = (*Clusterer)(nil)

// Cluster expands clusters from core pseudo-points through their
// preference-weighted neighborhoods. Core status comes from the online
// engine's flag; non-core points join a cluster they are reachable from
// but never extend it. Points reachable from nothing are noise and are
// dropped. Iteration is in ascending ID order so results are
// deterministic for identical snapshots.
func (c *Clusterer) Cluster(ctx context.Context, snapshot hddstream.Snapshot) ([]hddstream.Cluster, error) {
	ids := make([]uint64, 0, len(snapshot.Points))
	for id := range snapshot.Points {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	prefs := c.preferenceVectors(ids, snapshot)

	assigned := make(map[uint64]bool, len(ids))
	var clusters []hddstream.Cluster

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if assigned[id] || !snapshot.Points[id].Core {
			continue
		}

		members := c.expand(id, ids, snapshot, prefs, assigned)
		clusters = append(clusters, hddstream.Cluster{Members: members})
	}

	c.logger.WithFields(logrus.Fields{
		"action":        "offline_clustering",
		"pseudo_points": len(ids),
		"clusters":      len(clusters),
	}).Info("finished offline clustering")

	return clusters, nil
}

// expand grows one cluster from a seed core point via breadth-first
// density reachability.
func (c *Clusterer) expand(seed uint64, ids []uint64, snapshot hddstream.Snapshot,
	prefs map[uint64][]float64, assigned map[uint64]bool,
) []microcluster.PseudoPoint {
	var members []microcluster.PseudoPoint

	queue := []uint64{seed}
	assigned[seed] = true

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		members = append(members, snapshot.Points[id])

		if !snapshot.Points[id].Core {
			continue
		}

		for _, other := range ids {
			if assigned[other] {
				continue
			}
			if c.preferenceDistance(id, other, snapshot, prefs) <= snapshot.Epsilon {
				assigned[other] = true
				queue = append(queue, other)
			}
		}
	}

	return members
}

// preferenceVectors derives each pseudo-point's subspace preference
// from the variance of its plain Euclidean neighborhood: dimensions the
// neighborhood agrees on get the preference weight K, the rest 1.
func (c *Clusterer) preferenceVectors(ids []uint64, snapshot hddstream.Snapshot) map[uint64][]float64 {
	prefs := make(map[uint64][]float64, len(ids))

	for _, id := range ids {
		p := snapshot.Points[id]

		var neighbors []microcluster.PseudoPoint
		for _, other := range ids {
			if euclidean(p.Values, snapshot.Points[other].Values) <= snapshot.Epsilon {
				neighbors = append(neighbors, snapshot.Points[other])
			}
		}

		pref := make([]float64, snapshot.Dimensionality)
		for dim := range pref {
			var sum float64
			for _, n := range neighbors {
				diff := p.Values[dim] - n.Values[dim]
				sum += diff * diff
			}
			variance := sum / float64(len(neighbors))
			if variance <= snapshot.Delta {
				pref[dim] = snapshot.K
			} else {
				pref[dim] = microcluster.NonPreferred
			}
		}
		prefs[id] = pref
	}

	return prefs
}

// preferenceDistance is the symmetric preference-weighted distance: the
// larger of the two directed weighted distances, so that two points are
// close only if each lies in the other's preferred subspace.
func (c *Clusterer) preferenceDistance(a, b uint64, snapshot hddstream.Snapshot, prefs map[uint64][]float64) float64 {
	return math.Max(
		weightedDistance(snapshot.Points[a].Values, snapshot.Points[b].Values, prefs[a]),
		weightedDistance(snapshot.Points[b].Values, snapshot.Points[a].Values, prefs[b]),
	)
}

// weightedDistance scales each dimension's contribution by the
// preference weight, so a difference along a preferred dimension counts
// heavily against closeness.
func weightedDistance(a, b, pref []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff * pref[i]
	}
	return math.Sqrt(sum)
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
