// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/tocayo/dataset"
)

func setupServerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	query := &dataset.Record{Index: 0, TemplateID: 0, File: "q.c", Msg: "{Árbol}"}
	member := &dataset.Record{Index: 1, TemplateID: 1, File: "m.c", Msg: "{fix}"}

	results := &CollectReporter{
		Buckets: []*Bucket{{
			Query:   query,
			Radius:  2.0,
			NNs:     1,
			Size:    1,
			Members: []ResultPoint{{Rec: member, Distance: 4.0}},
		}},
		Groups: []*TemplateGroup{{
			TemplateID:  0,
			QueryPoints: []*dataset.Record{query},
			Neighbors:   []ResultPoint{{Rec: member, Distance: 4.0}},
		}},
		Stats: &Stats{
			Points:         2,
			Queries:        1,
			MeanQueryTime:  time.Millisecond,
			Buckets:        1,
			BucketedPoints: 1,
		},
	}

	return NewServer(results).Router()
}

func doGet(t *testing.T, router *gin.Engine, path string, out any) {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestServerStats(t *testing.T) {
	router := setupServerTest(t)

	var stats map[string]any

	doGet(t, router, "/api/stats", &stats)

	assert.EqualValues(t, 1, stats["queries"])
	assert.EqualValues(t, 1, stats["buckets"])
	assert.InDelta(t, 0.001, stats["mean_query_time_sec"], 1e-9)
}

func TestServerBuckets(t *testing.T) {
	router := setupServerTest(t)

	var buckets []bucketView

	doGet(t, router, "/api/buckets", &buckets)

	require.Len(t, buckets, 1)
	assert.Equal(t, 0, buckets[0].Query.Index)
	assert.Equal(t, "{arbol}", buckets[0].Query.MsgKey, "accent-folded display key")

	require.Len(t, buckets[0].Members, 1)
	assert.InDelta(t, 2.0, buckets[0].Members[0].Distance, 1e-9, "square root of stored distance")
}

func TestServerGroups(t *testing.T) {
	router := setupServerTest(t)

	var groups []groupView

	doGet(t, router, "/api/groups", &groups)

	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].TemplateID)
	require.Len(t, groups[0].Neighbors, 1)
	assert.Equal(t, 1, groups[0].Neighbors[0].TemplateID)
}

func TestServerStatsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewServer(&CollectReporter{}).Router()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/stats", nil)
	require.NoError(t, err)

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
