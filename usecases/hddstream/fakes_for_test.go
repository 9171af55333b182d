//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package hddstream

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/cytoclust/chronoclust/entities/microcluster"
)

func newNullLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

// fakeClusterer records every snapshot it receives and groups all
// pseudo-points into a single cluster, in ascending ID order.
type fakeClusterer struct {
	snapshots []Snapshot
	err       error
}

func (f *fakeClusterer) Cluster(_ context.Context, snapshot Snapshot) ([]Cluster, error) {
	f.snapshots = append(f.snapshots, snapshot)
	if f.err != nil {
		return nil, f.err
	}
	if len(snapshot.Points) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(snapshot.Points))
	for id := range snapshot.Points {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	members := make([]microcluster.PseudoPoint, 0, len(ids))
	for _, id := range ids {
		members = append(members, snapshot.Points[id])
	}

	return []Cluster{{Members: members}}, nil
}

func (f *fakeClusterer) lastSnapshot() Snapshot {
	return f.snapshots[len(f.snapshots)-1]
}
