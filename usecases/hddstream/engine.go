//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cytoclust/chronoclust/entities/microcluster"
	"github.com/cytoclust/chronoclust/usecases/config"
	"github.com/cytoclust/chronoclust/usecases/monitoring"
)

// Engine drives the online microcluster maintenance: one call per
// batch, each batch tagged with a non-decreasing day timestamp. It is
// strictly single-threaded; points are routed in batch order because
// ordering decides nearest-fit ties.
type Engine struct {
	config    config.Config
	lifecycle *Lifecycle
	clusterer Clusterer
	logger    logrus.FieldLogger
	metrics   *monitoring.PrometheusMetrics

	lastTimestamp  int64
	datasetSize    int
	dimensionality int
	finalClusters  []Cluster
}

func New(cfg config.Config, clusterer Clusterer, logger logrus.FieldLogger,
	metrics *monitoring.PrometheusMetrics,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid clustering config")
	}
	if clusterer == nil {
		return nil, errors.New("offline clusterer must not be nil")
	}

	return &Engine{
		config:    cfg,
		lifecycle: NewLifecycle(logger, metrics),
		clusterer: clusterer,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// ProcessBatch ingests one day's points, maintains the microcluster
// collections and hands the potential-core snapshot to the offline
// step. The returned clusters are also retained, see FinalClusters.
func (e *Engine) ProcessBatch(ctx context.Context, batch [][]float64, day int64) ([]Cluster, error) {
	start := time.Now()

	if err := e.validateBatch(batch); err != nil {
		return nil, err
	}

	params := e.deriveParams(batch)

	e.logger.WithFields(logrus.Fields{
		"action":    "online_maintenance",
		"timepoint": day,
		"epsilon":   params.Epsilon,
		"delta":     params.Delta,
		"beta":      params.Beta,
		"lambda":    params.Lambda,
		"pi":        params.Pi,
		"mu":        params.Mu,
		"upsilon":   params.Upsilon,
		"omicron":   params.Omicron,
	}).Info("starting online microcluster maintenance")

	// Decay exactly once per elapsed day. A repeated timestamp is a
	// same-day continuation and skips this whole block.
	if day != e.lastTimestamp {
		interval := float64(day - e.lastTimestamp)
		e.lifecycle.DecayAll(DecayFactor(params.Lambda, interval))
		e.lifecycle.DemotePotentialCore(params)
		e.lifecycle.PruneOutliers(params)
		e.lifecycle.ResetPoints()
		e.metrics.DecayRun()
	}

	for _, point := range batch {
		outcome := e.lifecycle.Route(point, day, params)
		e.metrics.PointRouted(outcome)
	}

	e.lastTimestamp = day
	e.metrics.SetCollectionSizes(len(e.lifecycle.PotentialCore()), len(e.lifecycle.Outliers()))

	e.logger.WithFields(logrus.Fields{
		"action":         "online_maintenance",
		"timepoint":      day,
		"potential_core": len(e.lifecycle.PotentialCore()),
		"outliers":       len(e.lifecycle.Outliers()),
	}).Info("finished online microcluster maintenance")

	clusters, err := e.clusterer.Cluster(ctx, e.snapshot(params))
	if err != nil {
		return nil, errors.Wrap(err, "offline clustering")
	}
	e.finalClusters = clusters

	e.metrics.ObserveBatchDuration(time.Since(start).Seconds())

	return clusters, nil
}

func (e *Engine) validateBatch(batch [][]float64) error {
	if len(batch) == 0 {
		return nil
	}

	dims := len(batch[0])
	if e.dimensionality != 0 && dims != e.dimensionality {
		return errors.Errorf("batch dimensionality %d does not match dataset dimensionality %d",
			dims, e.dimensionality)
	}
	for i, point := range batch {
		if len(point) != dims {
			return errors.Errorf("point %d has %d dimensions, expected %d", i, len(point), dims)
		}
	}

	return nil
}

// deriveParams computes the batch's threshold snapshot. Omicron must be
// scaled by the previous batch size before the size is updated to the
// current batch, mu by the current one afterwards; that ordering is a
// required invariant, not an accident.
func (e *Engine) deriveParams(batch [][]float64) Params {
	if len(batch) > 0 {
		e.dimensionality = len(batch[0])
	}

	pi := e.config.Pi
	if pi <= 0 {
		pi = e.dimensionality
	}

	omicron := e.config.OmicronMultiplier * float64(e.datasetSize)
	e.datasetSize = len(batch)
	mu := e.config.MuMultiplier * float64(e.datasetSize)

	return Params{
		Dimensionality: e.dimensionality,
		Epsilon:        e.config.Epsilon,
		EpsilonSq:      e.config.Epsilon * e.config.Epsilon,
		Upsilon:        e.config.UpsilonMultiplier * e.config.Epsilon,
		Delta:          e.config.Delta,
		DeltaSq:        e.config.Delta * e.config.Delta,
		Beta:           e.config.Beta,
		K:              e.config.K,
		Lambda:         e.config.Lambda,
		Pi:             pi,
		Mu:             mu,
		Omicron:        omicron,
	}
}

// snapshot builds the offline-handoff payload. Each potential-core
// cluster classifies itself via IsCore, independent of whatever the
// offline step later decides.
func (e *Engine) snapshot(params Params) Snapshot {
	points := make(map[uint64]microcluster.PseudoPoint, len(e.lifecycle.PotentialCore()))
	for _, mc := range e.lifecycle.PotentialCore() {
		core := mc.IsCore(params.EpsilonSq, params.Mu, params.Pi)
		points[mc.PrimaryID()] = mc.AsPseudoPoint(core)
	}

	return Snapshot{
		Points:         points,
		Dimensionality: params.Dimensionality,
		Epsilon:        params.Upsilon,
		Delta:          params.Delta,
		Pi:             params.Pi,
		Mu:             params.Mu,
		K:              params.K,
	}
}

// FinalClusters returns the offline result of the most recent batch.
func (e *Engine) FinalClusters() []Cluster {
	return e.finalClusters
}

// Lifecycle exposes the collection owner, mainly for inspection.
func (e *Engine) Lifecycle() *Lifecycle {
	return e.lifecycle
}
