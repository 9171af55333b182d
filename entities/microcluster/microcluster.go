//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package microcluster

import (
	"math"
)

// NonPreferred is the preference-vector entry for a dimension whose
// variance exceeds the threshold. Preferred dimensions carry the
// configured preference weight instead, which is always greater than 1.
const NonPreferred = float64(1)

// Microcluster is a decaying statistical summary of a group of nearby
// points. CF1 and CF2 hold the per-dimension linear and squared sums of
// all contributions, Weight the decayed count of contributing points.
// The preference vector marks which dimensions the cluster's members
// agree on (low variance) and drives all projected-distance geometry.
type Microcluster struct {
	// ID is set-valued so that merged or renamed clusters can carry
	// their lineage. A freshly created cluster has exactly one entry.
	ID        []uint64
	CreatedAt int64
	UpdatedAt int64

	CF1    []float64
	CF2    []float64
	Weight float64

	// Preferences holds the preference weight for dimensions whose
	// variance is at or below the threshold, NonPreferred otherwise.
	Preferences []float64

	// points buffers the current day's raw contributions. It is reset
	// at every day boundary to bound memory and never feeds into the
	// sufficient statistics, which are maintained incrementally.
	points [][]float64
}

// New returns an empty microcluster of the given dimensionality. Callers
// are expected to add at least one point before using any geometry.
func New(dimensions int, id uint64, createdAt int64) *Microcluster {
	return &Microcluster{
		ID:          []uint64{id},
		CreatedAt:   createdAt,
		CF1:         make([]float64, dimensions),
		CF2:         make([]float64, dimensions),
		Preferences: make([]float64, dimensions),
	}
}

// PrimaryID returns the first identifier of the cluster's ID set.
func (m *Microcluster) PrimaryID() uint64 {
	return m.ID[0]
}

// Reassign replaces the cluster's identity, used when it moves between
// the potential-core and outlier collections.
func (m *Microcluster) Reassign(id uint64) {
	m.ID = []uint64{id}
}

// AddPoint merges a point into the sufficient statistics with unit
// weight and records it into the transient per-day buffer. Preference
// recomputation is a separate step, see UpdatePreferredDimensions.
func (m *Microcluster) AddPoint(point []float64, timestamp int64) {
	for i, v := range point {
		m.CF1[i] += v
		m.CF2[i] += v * v
	}
	m.Weight++
	m.UpdatedAt = timestamp
	m.points = append(m.points, point)
}

// CopyWithPoint returns an independent clone with the point tentatively
// merged and preferences recomputed. The receiver is never mutated, so
// the clone can be used for feasibility checks and discarded.
func (m *Microcluster) CopyWithPoint(point []float64, varianceThresholdSq, preferenceWeight float64) *Microcluster {
	clone := &Microcluster{
		ID:          append([]uint64(nil), m.ID...),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CF1:         append([]float64(nil), m.CF1...),
		CF2:         append([]float64(nil), m.CF2...),
		Weight:      m.Weight,
		Preferences: append([]float64(nil), m.Preferences...),
	}

	for i, v := range point {
		clone.CF1[i] += v
		clone.CF2[i] += v * v
	}
	clone.Weight++
	clone.UpdatePreferredDimensions(varianceThresholdSq, preferenceWeight)

	return clone
}

// UpdatePreferredDimensions recomputes the preference vector from the
// sufficient statistics: a dimension whose variance is at or below the
// threshold receives the preference weight, every other dimension
// NonPreferred.
func (m *Microcluster) UpdatePreferredDimensions(varianceThresholdSq, preferenceWeight float64) {
	for i := range m.Preferences {
		if m.variance(i) <= varianceThresholdSq {
			m.Preferences[i] = preferenceWeight
		} else {
			m.Preferences[i] = NonPreferred
		}
	}
}

// PreferredDimensions is the cluster's projected dimensionality: the
// number of preference-vector entries carrying a preference weight.
func (m *Microcluster) PreferredDimensions() int {
	var count int
	for _, p := range m.Preferences {
		if Preferred(p) {
			count++
		}
	}
	return count
}

// Preferred reports whether a preference-vector entry marks a preferred
// dimension. This is the single predicate used for every projected
// dimensionality count.
func Preferred(entry float64) bool {
	return entry != NonPreferred
}

// Centroid returns the per-dimension mean of all contributions.
func (m *Microcluster) Centroid() []float64 {
	centroid := make([]float64, len(m.CF1))
	if m.Weight == 0 {
		return centroid
	}
	for i, v := range m.CF1 {
		centroid[i] = v / m.Weight
	}
	return centroid
}

// ProjectedDistanceTo returns the Euclidean distance between the
// cluster's centroid and the point, restricted to the cluster's
// preferred dimensions. Non-preferred dimensions contribute nothing.
func (m *Microcluster) ProjectedDistanceTo(point []float64) float64 {
	var sum float64
	for i, pref := range m.Preferences {
		if !Preferred(pref) {
			continue
		}
		diff := m.CF1[i]/m.Weight - point[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// ProjectedRadiusSquared derives the squared projected radius from the
// sufficient statistics: the summed variance over the cluster's
// preferred dimensions. No raw points are needed.
func (m *Microcluster) ProjectedRadiusSquared() float64 {
	var sum float64
	for i, pref := range m.Preferences {
		if !Preferred(pref) {
			continue
		}
		sum += m.variance(i)
	}
	return sum
}

// IsCore reports whether the cluster qualifies as a core cluster: dense
// enough, compact enough, and projected onto few enough dimensions.
func (m *Microcluster) IsCore(radiusThresholdSq, densityThreshold float64, maxPreferredDims int) bool {
	return m.Weight >= densityThreshold &&
		m.PreferredDimensions() <= maxPreferredDims &&
		m.ProjectedRadiusSquared() <= radiusThresholdSq
}

// Decay scales the sufficient statistics by the given factor. The
// factor for an elapsed interval is computed by the decay engine.
func (m *Microcluster) Decay(factor float64) {
	for i := range m.CF1 {
		m.CF1[i] *= factor
		m.CF2[i] *= factor
	}
	m.Weight *= factor
}

// ResetPoints drops the transient per-day point buffer. The sufficient
// statistics are untouched.
func (m *Microcluster) ResetPoints() {
	m.points = nil
}

// BufferedPoints returns the number of raw points recorded since the
// last day boundary.
func (m *Microcluster) BufferedPoints() int {
	return len(m.points)
}

func (m *Microcluster) variance(dim int) float64 {
	if m.Weight == 0 {
		return 0
	}
	mean := m.CF1[dim] / m.Weight
	return m.CF2[dim]/m.Weight - mean*mean
}
