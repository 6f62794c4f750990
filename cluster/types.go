// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

// Package cluster forms filtered, deduplicated buckets out of raw radius
// query results. It implements two modes over one scan of the dataset:
//
//   - flat: at most one bucket per query point per radius, reported
//     immediately when its size passes the configured bounds;
//   - grouped: one persistent group per distinct template id, accumulated
//     across the whole scan and reported at the end.
//
// In both modes a record is visited at most once as a query: every record
// that shows up in a result set is marked seen and never re-selected.
package cluster

import (
	"time"

	"github.com/jcodagnone/tocayo/dataset"
)

// ResultPoint pairs a dataset record with its squared distance to the
// current query point.
type ResultPoint struct {
	Rec      *dataset.Record
	Distance float64
}

// Bucket is the per-(query, radius) cluster of the flat mode. Size counts
// distinct accepted templates, which excludes the query's own template and
// repeated templates; Members holds exactly the accepted result points in
// record-index order.
type Bucket struct {
	Query       *dataset.Record
	Radius      float64
	RadiusIndex int
	NNs         int
	Size        int
	Members     []ResultPoint
}

// TemplateGroup accumulates, for one template id, every query record with
// that template and their filtered neighbors across the whole scan.
// QueryPoints are distinct records ordered by index; Neighbors hold at most
// one entry per template id, ordered by template id.
type TemplateGroup struct {
	TemplateID  int
	QueryPoints []*dataset.Record
	Neighbors   []ResultPoint
}

// Indicative returns the group's representative query point.
func (g *TemplateGroup) Indicative() *dataset.Record {
	if len(g.QueryPoints) == 0 {
		return nil
	}

	return g.QueryPoints[0]
}

// Stats aggregates the whole run. Buckets/BucketedPoints are meaningful in
// flat mode, Groups/GroupedNeighbors in grouped mode.
type Stats struct {
	Points           int
	Queries          int
	MeanQueryTime    time.Duration
	Buckets          int
	BucketedPoints   int
	Groups           int
	GroupedNeighbors int
	Grouped          bool
}

// Options configures one scan. The zero UpperBound is below any valid
// LowerBound and therefore means "unbounded".
type Options struct {
	// Radii to query per point. The scan supports several radii
	// structurally, though runs typically configure exactly one.
	Radii []float64

	// Group selects the template grouping mode instead of flat buckets.
	Group bool

	// LowerBound and UpperBound gate flat-mode bucket acceptance:
	// a bucket of size k is reported iff k >= LowerBound and
	// (UpperBound < LowerBound or k <= UpperBound).
	LowerBound int
	UpperBound int

	// Progress draws a progress bar on stderr while scanning.
	Progress bool
}

// DefaultOptions returns the defaults: LowerBound 1, unbounded upper bound.
func DefaultOptions() Options {
	return Options{LowerBound: 1}
}

func (o *Options) accepts(size int) bool {
	return size >= o.LowerBound && (o.UpperBound < o.LowerBound || size <= o.UpperBound)
}

// Reporter receives clustering output as the scan produces it: accepted
// buckets while scanning in flat mode, all groups at the end of the scan in
// grouped mode, and the final statistics in either mode.
type Reporter interface {
	Bucket(b *Bucket) error
	Group(g *TemplateGroup) error
	Summary(s *Stats) error
}
