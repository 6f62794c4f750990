// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/tocayo/dataset"
)

func TestTextReporterBucket(t *testing.T) {
	var buf bytes.Buffer

	r := NewTextReporter(&buf)

	query := &dataset.Record{Index: 3, TemplateID: 0, File: "q.c", RevNum: 1, Msg: "{q}"}
	member := &dataset.Record{Index: 7, TemplateID: 2, File: "src/a.c", RevNum: 4, Msg: "{fix}"}

	require.NoError(t, r.Bucket(&Bucket{
		Query:   query,
		Radius:  1.5,
		NNs:     5,
		Size:    1,
		Members: []ResultPoint{{Rec: member, Distance: 4.0}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Query point 3:")
	assert.Contains(t, out, "Bucket size 1, found 5 NNs at distance 1.500000 (radius no. 0). NNs are:")
	assert.Contains(t, out, "00007\tdist:2.0 \tTID:2\tFILE src/a.c\tREVNUM: 4\tMSG:{fix}",
		"distance printed as square root")
}

func TestTextReporterGroup(t *testing.T) {
	var buf bytes.Buffer

	r := NewTextReporter(&buf)

	require.NoError(t, r.Group(&TemplateGroup{
		TemplateID:  7,
		QueryPoints: []*dataset.Record{{Index: 1, TemplateID: 7, File: "a.c"}},
		Neighbors: []ResultPoint{
			{Rec: &dataset.Record{Index: 4, TemplateID: 2, File: "b.c"}, Distance: 1.0},
		},
	}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Template 7: Indicative Query Point: 00001"), out)
	assert.Contains(t, out, "Neighbors:\n00004")
}

func TestTextReporterSummary(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  []string
	}{
		{
			name: "flat",
			stats: Stats{
				Points:         2000,
				Queries:        1500,
				MeanQueryTime:  1500 * time.Microsecond,
				Buckets:        12,
				BucketedPoints: 500,
			},
			want: []string{
				"1,500 queries, Mean query time: 0.001500",
				"12 buckets, 500 points (out of 2,000, 25.00 %) in them",
			},
		},
		{
			name: "grouped",
			stats: Stats{
				Points:           100,
				Queries:          10,
				Grouped:          true,
				Groups:           4,
				GroupedNeighbors: 9,
			},
			want: []string{
				"10 queries",
				"4 groups, 9 deduplicated neighbors in them",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, NewTextReporter(&buf).Summary(&tc.stats))

			for _, want := range tc.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
