//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Routing outcomes reported on the points_routed_total counter.
const (
	OutcomePotentialCore = "potential_core"
	OutcomeOutlier       = "outlier"
	OutcomeCreated       = "created"
)

// PrometheusMetrics observes the online maintenance engine. A nil
// receiver is valid everywhere and turns every observation into a
// no-op, so callers never need to guard.
type PrometheusMetrics struct {
	PointsRouted *prometheus.CounterVec

	PotentialCoreClusters prometheus.Gauge
	OutlierClusters       prometheus.Gauge

	DecayRuns        prometheus.Counter
	ClustersUpgraded prometheus.Counter
	ClustersDemoted  prometheus.Counter
	ClustersDeleted  prometheus.Counter

	BatchDurations prometheus.Histogram
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	return &PrometheusMetrics{
		PointsRouted: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronoclust_points_routed_total",
				Help: "Points routed through the online maintenance engine by outcome",
			},
			[]string{"outcome"},
		),
		PotentialCoreClusters: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chronoclust_potential_core_microclusters",
				Help: "Live microclusters in the potential-core collection",
			},
		),
		OutlierClusters: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chronoclust_outlier_microclusters",
				Help: "Live microclusters in the outlier collection",
			},
		),
		DecayRuns: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chronoclust_decay_runs_total",
				Help: "Day-boundary decay and downgrade passes",
			},
		),
		ClustersUpgraded: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chronoclust_microclusters_upgraded_total",
				Help: "Outlier microclusters promoted to potential-core",
			},
		),
		ClustersDemoted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chronoclust_microclusters_demoted_total",
				Help: "Potential-core microclusters demoted to outlier",
			},
		),
		ClustersDeleted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chronoclust_microclusters_deleted_total",
				Help: "Outlier microclusters removed for falling below the survival weight",
			},
		),
		BatchDurations: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chronoclust_batch_duration_seconds",
				Help:    "Wall time of one online maintenance batch",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (pm *PrometheusMetrics) PointRouted(outcome string) {
	if pm == nil {
		return
	}
	pm.PointsRouted.WithLabelValues(outcome).Inc()
}

func (pm *PrometheusMetrics) SetCollectionSizes(potentialCore, outliers int) {
	if pm == nil {
		return
	}
	pm.PotentialCoreClusters.Set(float64(potentialCore))
	pm.OutlierClusters.Set(float64(outliers))
}

func (pm *PrometheusMetrics) DecayRun() {
	if pm == nil {
		return
	}
	pm.DecayRuns.Inc()
}

func (pm *PrometheusMetrics) Upgraded() {
	if pm == nil {
		return
	}
	pm.ClustersUpgraded.Inc()
}

func (pm *PrometheusMetrics) Demoted() {
	if pm == nil {
		return
	}
	pm.ClustersDemoted.Inc()
}

func (pm *PrometheusMetrics) Deleted() {
	if pm == nil {
		return
	}
	pm.ClustersDeleted.Inc()
}

func (pm *PrometheusMetrics) ObserveBatchDuration(seconds float64) {
	if pm == nil {
		return
	}
	pm.BatchDurations.Observe(seconds)
}
