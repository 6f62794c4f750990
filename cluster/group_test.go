// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcodagnone/tocayo/dataset"
)

func TestGroupSetOrderedInsert(t *testing.T) {
	gs := newGroupSet()

	for _, tid := range []int{42, 7, 19, 7, 42, 3} {
		gs.locate(tid)
	}

	groups := gs.ordered()
	ids := make([]int, len(groups))

	for i, g := range groups {
		ids[i] = g.TemplateID
	}

	assert.Equal(t, []int{3, 7, 19, 42}, ids, "unique, ascending")
}

func TestGroupSetLocateReturnsSameGroup(t *testing.T) {
	gs := newGroupSet()

	a := gs.locate(7)
	b := gs.locate(7)

	assert.Same(t, a, b)
}

func TestAddQueryPointDedupsByIndex(t *testing.T) {
	g := &TemplateGroup{TemplateID: 1}

	r5 := &dataset.Record{Index: 5, TemplateID: 1}
	r2 := &dataset.Record{Index: 2, TemplateID: 1}

	g.addQueryPoint(r5)
	g.addQueryPoint(r2)
	g.addQueryPoint(r5)

	assert.Len(t, g.QueryPoints, 2)
	assert.Equal(t, 2, g.QueryPoints[0].Index)
	assert.Equal(t, 5, g.QueryPoints[1].Index)
}

func TestAddNeighborDedupsByTemplate(t *testing.T) {
	g := &TemplateGroup{TemplateID: 1}

	first := ResultPoint{Rec: &dataset.Record{Index: 10, TemplateID: 4}}
	dup := ResultPoint{Rec: &dataset.Record{Index: 11, TemplateID: 4}}
	other := ResultPoint{Rec: &dataset.Record{Index: 12, TemplateID: 2}}

	assert.True(t, g.addNeighbor(first))
	assert.False(t, g.addNeighbor(dup), "template 4 already represented")
	assert.True(t, g.addNeighbor(other))

	assert.Len(t, g.Neighbors, 2)
	assert.Equal(t, 2, g.Neighbors[0].Rec.TemplateID)
	assert.Equal(t, 4, g.Neighbors[1].Rec.TemplateID)
	assert.Equal(t, 10, g.Neighbors[1].Rec.Index, "first record for the template stays")
}
