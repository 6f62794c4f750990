// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import "github.com/jcodagnone/tocayo/dataset"

// formBucket consumes one index-sorted result set and builds at most one
// bucket for the query: it skips (marking seen) every filtered record until
// the first acceptable one, then scans to the end of the sequence with a
// cumulative template set. Every visited record ends up seen, accepted or
// not. Returns nil when no acceptable record exists.
//
// Acceptance against the size bounds is the caller's concern; a bucket
// returned here may still be rejected, but its members stay seen either way.
func formBucket(query *dataset.Record, results []ResultPoint, radius float64, radiusIndex int, seen []bool) *Bucket {
	templatesSeen := make(map[int]struct{})

	i := 0
	for ; i < len(results); i++ {
		if notFiltered(results[i].Rec, query, templatesSeen) {
			break
		}

		seen[results[i].Rec.Index] = true
	}

	if i >= len(results) {
		return nil
	}

	first := results[i]
	templatesSeen[first.Rec.TemplateID] = struct{}{}
	seen[first.Rec.Index] = true

	b := &Bucket{
		Query:       query,
		Radius:      radius,
		RadiusIndex: radiusIndex,
		NNs:         len(results),
		Size:        1,
		Members:     []ResultPoint{first},
	}

	for i++; i < len(results); i++ {
		rp := results[i]
		if notFiltered(rp.Rec, query, templatesSeen) {
			templatesSeen[rp.Rec.TemplateID] = struct{}{}
			b.Size++
			b.Members = append(b.Members, rp)
		}

		seen[rp.Rec.Index] = true
	}

	return b
}
