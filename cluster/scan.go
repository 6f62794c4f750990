// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/jcodagnone/tocayo/dataset"
	"github.com/jcodagnone/tocayo/nn"
)

var (
	errNoRecords = errors.New("no records to scan")
	errNoRadii   = errors.New("at least one radius is required")
)

// Scanner drives a single pass over the dataset: it selects each not-yet-seen
// record as a query, runs the radius queries, and feeds the sorted, filtered
// results to the flat or grouped engine.
type Scanner struct {
	records  []*dataset.Record
	index    nn.Index
	opts     Options
	reporter Reporter
}

// NewScanner validates the configuration and builds a Scanner. Violations
// (empty dataset, dataset over the point cap, no radii, nonsensical bounds)
// are configuration errors reported before any work starts.
func NewScanner(records []*dataset.Record, index nn.Index, opts Options, reporter Reporter) (*Scanner, error) {
	if len(records) == 0 {
		return nil, errNoRecords
	}

	if len(records) > dataset.MaxSupportedPoints {
		return nil, fmt.Errorf("%w: %d records, at most %d",
			dataset.ErrTooManyPoints, len(records), dataset.MaxSupportedPoints)
	}

	if len(opts.Radii) == 0 {
		return nil, errNoRadii
	}

	if opts.LowerBound < 1 {
		opts.LowerBound = 1
	}

	return &Scanner{
		records:  records,
		index:    index,
		opts:     opts,
		reporter: reporter,
	}, nil
}

// Run executes the scan and returns the aggregate statistics. There is no
// per-query recovery: the first failing index lookup or report write aborts
// the run.
func (s *Scanner) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Points:  len(s.records),
		Grouped: s.opts.Group,
	}

	seen := make([]bool, len(s.records))
	groups := newGroupSet()

	var bar *progressbar.ProgressBar
	if s.opts.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(s.records),
			progressbar.OptionSetDescription("Clustering"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var totalQueryTime time.Duration

	for i := range s.records {
		if seen[i] {
			continue
		}

		query := s.records[i]
		seen[i] = true
		stats.Queries++

		for radiusIndex, radius := range s.opts.Radii {
			start := time.Now()

			neighbors, err := s.index.Query(ctx, query, radius)
			if err != nil {
				return nil, fmt.Errorf("querying neighbors of record %d: %w", query.Index, err)
			}

			totalQueryTime += time.Since(start)

			results := s.resolve(neighbors)
			sortResults(results)

			if s.opts.Group {
				groupStep(groups, query, results, seen)

				continue
			}

			b := formBucket(query, results, radius, radiusIndex, seen)
			if b == nil || !s.opts.accepts(b.Size) {
				continue
			}

			stats.Buckets++
			stats.BucketedPoints += len(b.Members)

			if err := s.reporter.Bucket(b); err != nil {
				return nil, fmt.Errorf("reporting bucket for record %d: %w", query.Index, err)
			}
		}

		if bar != nil {
			_ = bar.Set(i + 1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if s.opts.Group {
		for _, g := range groups.ordered() {
			stats.Groups++
			stats.GroupedNeighbors += len(g.Neighbors)

			if err := s.reporter.Group(g); err != nil {
				return nil, fmt.Errorf("reporting group %d: %w", g.TemplateID, err)
			}
		}
	}

	if stats.Queries > 0 {
		stats.MeanQueryTime = totalQueryTime / time.Duration(stats.Queries)
	}

	if err := s.reporter.Summary(stats); err != nil {
		return nil, fmt.Errorf("reporting summary: %w", err)
	}

	return stats, nil
}

// resolve maps raw index neighbors back to dataset records.
func (s *Scanner) resolve(neighbors []nn.Neighbor) []ResultPoint {
	results := make([]ResultPoint, 0, len(neighbors))

	for _, n := range neighbors {
		if n.Index < 0 || n.Index >= len(s.records) {
			continue
		}

		results = append(results, ResultPoint{
			Rec:      s.records[n.Index],
			Distance: n.Distance,
		})
	}

	return results
}
