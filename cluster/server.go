// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jcodagnone/tocayo/dataset"
)

// Server exposes a completed scan as local JSON endpoints, to browse the
// report without re-running the clustering. Local only, no auth.
type Server struct {
	results *CollectReporter
}

// NewServer builds a Server over collected scan results.
func NewServer(results *CollectReporter) *Server {
	return &Server{results: results}
}

// Router builds the gin router with the report routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.GET("/api/stats", s.getStats)
	router.GET("/api/buckets", s.getBuckets)
	router.GET("/api/groups", s.getGroups)

	return router
}

// Run serves the report on addr until the process exits.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type recordView struct {
	Index      int     `json:"index"`
	Distance   float64 `json:"distance,omitempty"`
	TemplateID int     `json:"template_id"`
	RevNum     int     `json:"revnum"`
	File       string  `json:"file"`
	Msg        string  `json:"msg"`
	MsgKey     string  `json:"msg_key"`
}

type bucketView struct {
	Query   recordView   `json:"query"`
	Radius  float64      `json:"radius"`
	NNs     int          `json:"nns"`
	Size    int          `json:"size"`
	Members []recordView `json:"members"`
}

type groupView struct {
	TemplateID  int          `json:"template_id"`
	QueryPoints []recordView `json:"query_points"`
	Neighbors   []recordView `json:"neighbors"`
}

type statsView struct {
	Points           int     `json:"points"`
	Queries          int     `json:"queries"`
	MeanQueryTimeSec float64 `json:"mean_query_time_sec"`
	Buckets          int     `json:"buckets"`
	BucketedPoints   int     `json:"bucketed_points"`
	Groups           int     `json:"groups"`
	GroupedNeighbors int     `json:"grouped_neighbors"`
	Grouped          bool    `json:"grouped"`
}

func viewRecord(rec *dataset.Record) recordView {
	return recordView{
		Index:      rec.Index,
		TemplateID: rec.TemplateID,
		RevNum:     rec.RevNum,
		File:       rec.File,
		Msg:        rec.Msg,
		MsgKey:     rec.MsgKey(),
	}
}

func viewResultPoint(rp ResultPoint) recordView {
	v := viewRecord(rp.Rec)
	v.Distance = math.Sqrt(rp.Distance)

	return v
}

func viewResultPoints(rps []ResultPoint) []recordView {
	views := make([]recordView, len(rps))
	for i, rp := range rps {
		views[i] = viewResultPoint(rp)
	}

	return views
}

func (s *Server) getStats(c *gin.Context) {
	st := s.results.Stats
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan results"})

		return
	}

	c.JSON(http.StatusOK, statsView{
		Points:           st.Points,
		Queries:          st.Queries,
		MeanQueryTimeSec: st.MeanQueryTime.Seconds(),
		Buckets:          st.Buckets,
		BucketedPoints:   st.BucketedPoints,
		Groups:           st.Groups,
		GroupedNeighbors: st.GroupedNeighbors,
		Grouped:          st.Grouped,
	})
}

func (s *Server) getBuckets(c *gin.Context) {
	views := make([]bucketView, len(s.results.Buckets))

	for i, b := range s.results.Buckets {
		views[i] = bucketView{
			Query:   viewRecord(b.Query),
			Radius:  b.Radius,
			NNs:     b.NNs,
			Size:    b.Size,
			Members: viewResultPoints(b.Members),
		}
	}

	c.JSON(http.StatusOK, views)
}

func (s *Server) getGroups(c *gin.Context) {
	views := make([]groupView, len(s.results.Groups))

	for i, g := range s.results.Groups {
		queryPoints := make([]recordView, len(g.QueryPoints))
		for j, rec := range g.QueryPoints {
			queryPoints[j] = viewRecord(rec)
		}

		views[i] = groupView{
			TemplateID:  g.TemplateID,
			QueryPoints: queryPoints,
			Neighbors:   viewResultPoints(g.Neighbors),
		}
	}

	c.JSON(http.StatusOK, views)
}
