// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

// Package nn provides the near-neighbor index the clustering scan consumes:
// given a query record and a radius, all dataset records within that radius.
package nn

import (
	"context"

	"github.com/jcodagnone/tocayo/dataset"
)

// Neighbor pairs a dataset record index with its squared-L2 distance to the
// query record.
type Neighbor struct {
	Index    int
	Distance float64
}

// Index is the radius-query contract. Implementations return the neighbors
// within radius of the query record, excluding the query record itself.
// Callers must not assume any ordering of the result.
type Index interface {
	Query(ctx context.Context, rec *dataset.Record, radius float64) ([]Neighbor, error)
}
