// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"fmt"
	"io"
	"math"

	"github.com/jcodagnone/tocayo/utils/textutils"
)

// TextReporter writes the classic textual report: one entry per accepted
// bucket (flat mode) or per group (grouped mode), then a statistics summary.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter builds a TextReporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) Bucket(b *Bucket) error {
	if _, err := fmt.Fprintf(r.w, "\nQuery point %d: %s\n", b.Query.Index, b.Query); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.w, "Bucket size %d, found %d NNs at distance %0.6f (radius no. %d). NNs are:\n",
		b.Size, b.NNs, b.Radius, b.RadiusIndex); err != nil {
		return err
	}

	for _, m := range b.Members {
		if _, err := fmt.Fprintf(r.w, "%05d\tdist:%0.1f \tTID:%d\tFILE %s\tREVNUM: %d\tMSG:%s\n",
			m.Rec.Index, math.Sqrt(m.Distance), m.Rec.TemplateID,
			m.Rec.File, m.Rec.RevNum, m.Rec.Msg); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextReporter) Group(g *TemplateGroup) error {
	if _, err := fmt.Fprintf(r.w, "Template %d: Indicative Query Point: %s\n",
		g.TemplateID, g.Indicative()); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(r.w, "Neighbors:"); err != nil {
		return err
	}

	for _, m := range g.Neighbors {
		if _, err := fmt.Fprintf(r.w, "%05d\tdist:%0.1f \tTID:%d\tFILE %s\tREVNUM: %d\tMSG:%s\n",
			m.Rec.Index, math.Sqrt(m.Distance), m.Rec.TemplateID,
			m.Rec.File, m.Rec.RevNum, m.Rec.Msg); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextReporter) Summary(s *Stats) error {
	if _, err := fmt.Fprintf(r.w, "\n%s queries, Mean query time: %0.6f\n",
		textutils.FormatInt(int64(s.Queries)), s.MeanQueryTime.Seconds()); err != nil {
		return err
	}

	if s.Grouped {
		_, err := fmt.Fprintf(r.w, "%s groups, %s deduplicated neighbors in them\n",
			textutils.FormatInt(int64(s.Groups)),
			textutils.FormatInt(int64(s.GroupedNeighbors)))

		return err
	}

	pct := 0.0
	if s.Points > 0 {
		pct = 100 * float64(s.BucketedPoints) / float64(s.Points)
	}

	_, err := fmt.Fprintf(r.w, "%s buckets, %s points (out of %s, %.2f %%) in them\n",
		textutils.FormatInt(int64(s.Buckets)),
		textutils.FormatInt(int64(s.BucketedPoints)),
		textutils.FormatInt(int64(s.Points)),
		pct)

	return err
}

// CollectReporter retains the structured results in memory, for the report
// server and for tests.
type CollectReporter struct {
	Buckets []*Bucket
	Groups  []*TemplateGroup
	Stats   *Stats
}

func (r *CollectReporter) Bucket(b *Bucket) error {
	r.Buckets = append(r.Buckets, b)

	return nil
}

func (r *CollectReporter) Group(g *TemplateGroup) error {
	r.Groups = append(r.Groups, g)

	return nil
}

func (r *CollectReporter) Summary(s *Stats) error {
	r.Stats = s

	return nil
}
