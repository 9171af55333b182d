//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

// Package tracking links the offline step's final clusters across
// timepoints, producing the cluster history that makes an evolving
// population followable from day to day.
package tracking

import (
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cytoclust/chronoclust/usecases/hddstream"
)

// TrackedCluster is one final cluster at one timepoint. Clusters at
// consecutive timepoints whose centroids stay within the association
// radius share the same tracking ID, so the ID is the cluster's lineage.
type TrackedCluster struct {
	TrackingID uuid.UUID
	Timepoint  int64
	Centroid   []float64
	Members    []uint64
	Weight     float64
}

// Timepoint is the full set of tracked clusters for one day.
type Timepoint struct {
	Day      int64
	Clusters []TrackedCluster
}

// Tracker associates each day's final clusters with the previous day's
// by nearest centroid. It is as single-threaded as the engine feeding
// it.
type Tracker struct {
	runID    uuid.UUID
	reach    float64
	logger   logrus.FieldLogger
	previous []TrackedCluster
	history  []Timepoint
}

// NewTracker creates a tracker whose association radius is normally the
// offline clustering radius upsilon.
func NewTracker(reach float64, logger logrus.FieldLogger) *Tracker {
	return &Tracker{
		runID:  uuid.New(),
		reach:  reach,
		logger: logger,
	}
}

// RunID identifies this tracking run in exported histories.
func (t *Tracker) RunID() uuid.UUID {
	return t.runID
}

// Observe records one day's final clusters and links each to its
// closest predecessor within the association radius. Every predecessor
// is claimed at most once; unmatched clusters start a fresh lineage.
func (t *Tracker) Observe(day int64, clusters []hddstream.Cluster) []TrackedCluster {
	claimed := make([]bool, len(t.previous))
	tracked := make([]TrackedCluster, 0, len(clusters))

	for _, cluster := range clusters {
		tc := TrackedCluster{
			Timepoint: day,
			Centroid:  cluster.Centroid(),
		}
		for _, member := range cluster.Members {
			tc.Members = append(tc.Members, member.ID)
			tc.Weight += member.Weight
		}

		if idx := t.closestPredecessor(tc.Centroid, claimed); idx >= 0 {
			claimed[idx] = true
			tc.TrackingID = t.previous[idx].TrackingID
		} else {
			tc.TrackingID = uuid.New()
		}

		tracked = append(tracked, tc)
	}

	t.previous = tracked
	t.history = append(t.history, Timepoint{Day: day, Clusters: tracked})

	t.logger.WithFields(logrus.Fields{
		"action":    "cluster_tracking",
		"timepoint": day,
		"clusters":  len(tracked),
	}).Debug("recorded tracked clusters")

	return tracked
}

func (t *Tracker) closestPredecessor(centroid []float64, claimed []bool) int {
	best := -1
	var bestDist float64

	for i, prev := range t.previous {
		if claimed[i] || len(prev.Centroid) != len(centroid) {
			continue
		}

		var sum float64
		for d := range centroid {
			diff := prev.Centroid[d] - centroid[d]
			sum += diff * diff
		}
		dist := math.Sqrt(sum)
		if dist > t.reach {
			continue
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	return best
}

// History returns every observed timepoint in order.
func (t *Tracker) History() []Timepoint {
	return t.history
}
