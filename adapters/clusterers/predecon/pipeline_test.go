//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package predecon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytoclust/chronoclust/usecases/config"
	"github.com/cytoclust/chronoclust/usecases/hddstream"
	"github.com/cytoclust/chronoclust/usecases/tracking"
)

// Two dense populations fed over consecutive days must come out as two
// final clusters whose tracking identity survives the day boundary.
func TestStreamPipeline_TwoPopulationsAcrossDays(t *testing.T) {
	cfg := config.Config{
		Epsilon:           0.3,
		UpsilonMultiplier: 2,
		Delta:             0.3,
		Beta:              0.2,
		K:                 100,
		Lambda:            0.5,
		MuMultiplier:      0.01,
		OmicronMultiplier: 0.0001,
	}

	engine, err := hddstream.New(cfg, New(newNullLogger()), newNullLogger(), nil)
	require.Nil(t, err)
	tracker := tracking.NewTracker(cfg.UpsilonMultiplier*cfg.Epsilon, newNullLogger())

	batch := func() [][]float64 {
		var points [][]float64
		for i := 0; i < 10; i++ {
			points = append(points, []float64{0.1, 0.1})
		}
		for i := 0; i < 10; i++ {
			points = append(points, []float64{0.9, 0.9})
		}
		return points
	}

	clusters, err := engine.ProcessBatch(context.Background(), batch(), 0)
	require.Nil(t, err)
	require.Len(t, clusters, 2, "one final cluster per population")
	day0 := tracker.Observe(0, clusters)

	clusters, err = engine.ProcessBatch(context.Background(), batch(), 1)
	require.Nil(t, err)
	require.Len(t, clusters, 2)
	day1 := tracker.Observe(1, clusters)

	t.Run("populations keep their lineage across the day boundary", func(t *testing.T) {
		require.Len(t, day0, 2)
		require.Len(t, day1, 2)
		assert.ElementsMatch(t,
			[]string{day0[0].TrackingID.String(), day0[1].TrackingID.String()},
			[]string{day1[0].TrackingID.String(), day1[1].TrackingID.String()},
		)
	})

	t.Run("weights carry decayed history plus the new day", func(t *testing.T) {
		pcore := engine.Lifecycle().PotentialCore()
		require.Len(t, pcore, 2)
		expected := 10*hddstream.DecayFactor(cfg.Lambda, 1) + 10
		for _, mc := range pcore {
			assert.InDelta(t, expected, mc.Weight, 1e-9)
		}
	})
}
