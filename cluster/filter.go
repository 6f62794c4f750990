// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"sort"

	"github.com/jcodagnone/tocayo/dataset"
)

// notFiltered reports whether a candidate may join the current bucket or
// group: its template must differ from the query's and must not already be
// represented in templatesSeen. First-seen-per-template wins, which is why
// result sets are index-sorted before filtering.
func notFiltered(candidate, query *dataset.Record, templatesSeen map[int]struct{}) bool {
	if candidate.TemplateID == query.TemplateID {
		return false
	}

	_, used := templatesSeen[candidate.TemplateID]

	return !used
}

// sortResults orders a raw result set by record index ascending. Indices are
// unique, so the order is total and deterministic.
func sortResults(results []ResultPoint) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Rec.Index < results[j].Rec.Index
	})
}
