// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"slices"

	"github.com/jcodagnone/tocayo/dataset"
)

// groupSet keeps one TemplateGroup per template id with ordered lookup and
// insert, and ascending-id iteration for reporting.
type groupSet struct {
	byID map[int]*TemplateGroup
	ids  []int
}

func newGroupSet() *groupSet {
	return &groupSet{byID: make(map[int]*TemplateGroup)}
}

// locate finds the group for a template id, creating it on first encounter.
func (s *groupSet) locate(templateID int) *TemplateGroup {
	if g, ok := s.byID[templateID]; ok {
		return g
	}

	g := &TemplateGroup{TemplateID: templateID}
	s.byID[templateID] = g

	pos, _ := slices.BinarySearch(s.ids, templateID)
	s.ids = slices.Insert(s.ids, pos, templateID)

	return g
}

// ordered returns the groups in ascending template-id order.
func (s *groupSet) ordered() []*TemplateGroup {
	groups := make([]*TemplateGroup, len(s.ids))
	for i, id := range s.ids {
		groups[i] = s.byID[id]
	}

	return groups
}

// addQueryPoint inserts rec into the group's query set, keeping it ordered
// by record index and free of duplicates.
func (g *TemplateGroup) addQueryPoint(rec *dataset.Record) {
	pos, found := slices.BinarySearchFunc(g.QueryPoints, rec,
		func(a, b *dataset.Record) int { return a.Index - b.Index })
	if found {
		return
	}

	g.QueryPoints = slices.Insert(g.QueryPoints, pos, rec)
}

// addNeighbor inserts rp into the group's neighbor set, keyed and ordered by
// template id. A group never holds two neighbors sharing a template id: the
// first record accepted for a template stays, later ones are dropped.
func (g *TemplateGroup) addNeighbor(rp ResultPoint) bool {
	pos, found := slices.BinarySearchFunc(g.Neighbors, rp,
		func(a, b ResultPoint) int { return a.Rec.TemplateID - b.Rec.TemplateID })
	if found {
		return false
	}

	g.Neighbors = slices.Insert(g.Neighbors, pos, rp)

	return true
}

// groupStep processes one query's sorted result set in grouped mode. The
// dedup is cumulative against everything the group already holds, so a
// template accepted for an earlier query of the same group is not accepted
// again.
func groupStep(gs *groupSet, query *dataset.Record, results []ResultPoint, seen []bool) {
	g := gs.locate(query.TemplateID)
	g.addQueryPoint(query)

	for _, rp := range results {
		if rp.Rec.TemplateID != query.TemplateID {
			g.addNeighbor(rp)
		}

		seen[rp.Rec.Index] = true
	}
}
