//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import (
	"github.com/sirupsen/logrus"

	"github.com/cytoclust/chronoclust/entities/microcluster"
	"github.com/cytoclust/chronoclust/usecases/monitoring"
)

// idSequence hands out monotonically increasing identifiers. A single
// sequence covers both collections, so identifiers are never reused or
// shared even as clusters move between collections or get deleted.
type idSequence struct {
	next uint64
}

func (s *idSequence) take() uint64 {
	id := s.next
	s.next++
	return id
}

// Lifecycle owns the two microcluster collections and every state
// transition between them. A microcluster lives in exactly one of the
// two collections at any time.
type Lifecycle struct {
	potentialCore []*microcluster.Microcluster
	outliers      []*microcluster.Microcluster

	ids idSequence

	logger  logrus.FieldLogger
	metrics *monitoring.PrometheusMetrics
}

func NewLifecycle(logger logrus.FieldLogger, metrics *monitoring.PrometheusMetrics) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		metrics: metrics,
	}
}

// Route places one point: first into the best potential-core cluster,
// failing that into the best outlier cluster (with an immediate upgrade
// check), failing both it seeds a brand-new outlier cluster. A point is
// never lost and never counted twice.
func (l *Lifecycle) Route(point []float64, timestamp int64, params Params) string {
	if _, ok := tryAssign(point, timestamp, l.potentialCore, params, true); ok {
		return monitoring.OutcomePotentialCore
	}

	if target, ok := tryAssign(point, timestamp, l.outliers, params, false); ok {
		l.maybeUpgrade(target, params)
		return monitoring.OutcomeOutlier
	}

	l.createOutlier(point, timestamp, params)
	return monitoring.OutcomeCreated
}

func (l *Lifecycle) createOutlier(point []float64, timestamp int64, params Params) {
	mc := microcluster.New(len(point), l.ids.take(), timestamp)
	mc.AddPoint(point, timestamp)
	mc.UpdatePreferredDimensions(params.DeltaSq, params.K)
	l.outliers = append(l.outliers, mc)
}

// maybeUpgrade promotes an outlier cluster that has grown dense and
// stayed low-dimensional enough to be potential-core. The radius needs
// no re-check here, the assignment that triggered the upgrade already
// verified it.
func (l *Lifecycle) maybeUpgrade(mc *microcluster.Microcluster, params Params) {
	if mc.Weight < params.CoreWeightThreshold() {
		return
	}
	if mc.PreferredDimensions() > params.Pi {
		return
	}

	for i, candidate := range l.outliers {
		if candidate == mc {
			l.outliers = append(l.outliers[:i], l.outliers[i+1:]...)
			break
		}
	}

	mc.Reassign(l.ids.take())
	l.potentialCore = append(l.potentialCore, mc)
	l.metrics.Upgraded()

	l.logger.WithField("action", "microcluster_upgrade").
		WithField("microcluster_id", mc.PrimaryID()).
		Debug("outlier microcluster promoted to potential-core")
}

// DemotePotentialCore moves every potential-core cluster that no longer
// qualifies (decayed weight below the core threshold, or projected
// dimensionality above Pi) back into the outlier collection.
func (l *Lifecycle) DemotePotentialCore(params Params) {
	kept := l.potentialCore[:0]
	for _, mc := range l.potentialCore {
		tooLight := mc.Weight < params.CoreWeightThreshold()
		tooWide := mc.PreferredDimensions() > params.Pi
		if !tooLight && !tooWide {
			kept = append(kept, mc)
			continue
		}

		mc.Reassign(l.ids.take())
		l.outliers = append(l.outliers, mc)
		l.metrics.Demoted()
	}
	l.potentialCore = kept
}

// PruneOutliers permanently removes outlier clusters whose decayed
// weight has fallen to or below the survival weight omicron.
func (l *Lifecycle) PruneOutliers(params Params) {
	kept := l.outliers[:0]
	var deleted int
	for _, mc := range l.outliers {
		if mc.Weight > params.Omicron {
			kept = append(kept, mc)
			continue
		}
		deleted++
		l.metrics.Deleted()
	}
	l.outliers = kept

	if deleted > 0 {
		l.logger.WithField("action", "outlier_prune").
			WithField("deleted", deleted).
			Debug("removed outlier microclusters below survival weight")
	}
}

// DecayAll scales every microcluster in both collections by the given
// decay factor.
func (l *Lifecycle) DecayAll(factor float64) {
	for _, mc := range l.potentialCore {
		mc.Decay(factor)
	}
	for _, mc := range l.outliers {
		mc.Decay(factor)
	}
}

// ResetPoints drops every microcluster's transient per-day point
// buffer, called once per day boundary to bound memory.
func (l *Lifecycle) ResetPoints() {
	for _, mc := range l.potentialCore {
		mc.ResetPoints()
	}
	for _, mc := range l.outliers {
		mc.ResetPoints()
	}
}

// PotentialCore exposes the potential-core collection in insertion
// order. Callers must not mutate the slice.
func (l *Lifecycle) PotentialCore() []*microcluster.Microcluster {
	return l.potentialCore
}

// Outliers exposes the outlier collection in insertion order. Callers
// must not mutate the slice.
func (l *Lifecycle) Outliers() []*microcluster.Microcluster {
	return l.outliers
}
