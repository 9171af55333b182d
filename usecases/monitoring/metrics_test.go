//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_NilReceiverIsNoop(t *testing.T) {
	var pm *PrometheusMetrics

	assert.NotPanics(t, func() {
		pm.PointRouted(OutcomeCreated)
		pm.SetCollectionSizes(1, 2)
		pm.DecayRun()
		pm.Upgraded()
		pm.Demoted()
		pm.Deleted()
		pm.ObserveBatchDuration(0.1)
	})
}

func TestPrometheusMetrics_Observations(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.PointRouted(OutcomeCreated)
	pm.PointRouted(OutcomeCreated)
	pm.PointRouted(OutcomeOutlier)
	pm.SetCollectionSizes(3, 7)
	pm.DecayRun()

	assert.Equal(t, float64(2),
		testutil.ToFloat64(pm.PointsRouted.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(pm.PointsRouted.WithLabelValues(OutcomeOutlier)))
	assert.Equal(t, float64(3), testutil.ToFloat64(pm.PotentialCoreClusters))
	assert.Equal(t, float64(7), testutil.ToFloat64(pm.OutlierClusters))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.DecayRuns))
}

func TestPrometheusMetrics_RegistersCleanly(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	NewPrometheusMetrics(reg)

	_, err := reg.Gather()
	require.Nil(t, err)
}
