//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package microcluster

// PseudoPoint is the offline-handoff view of a potential-core
// microcluster: its centroid treated as a single weighted point, plus
// the sufficient statistics the offline step needs to rebuild variance
// information, and the core flag the online engine computed for it.
type PseudoPoint struct {
	ID     uint64
	Values []float64
	CF1    []float64
	CF2    []float64
	Weight float64
	Core   bool
}

// AsPseudoPoint snapshots the microcluster for the offline step. The
// returned vectors are copies, the live cluster keeps evolving.
func (m *Microcluster) AsPseudoPoint(core bool) PseudoPoint {
	return PseudoPoint{
		ID:     m.PrimaryID(),
		Values: m.Centroid(),
		CF1:    append([]float64(nil), m.CF1...),
		CF2:    append([]float64(nil), m.CF2...),
		Weight: m.Weight,
		Core:   core,
	}
}
