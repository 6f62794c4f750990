// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package nn

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/vecgo"

	"github.com/jcodagnone/tocayo/dataset"
)

var errEmptyDataset = errors.New("cannot index an empty dataset")

// FlatIndex is an exact (brute-force) Index over a vecgo flat index. Exact
// search keeps radius queries free of false negatives, so the clustering
// output is deterministic for a given dataset.
type FlatIndex struct {
	db   *vecgo.Vecgo[int]
	size int
}

// NewFlatIndex builds a flat index holding every record's vector. The
// payload of each vector is the dataset record index.
func NewFlatIndex(ctx context.Context, records []*dataset.Record) (*FlatIndex, error) {
	if len(records) == 0 {
		return nil, errEmptyDataset
	}

	if len(records) > dataset.MaxSupportedPoints {
		return nil, fmt.Errorf("%w: at most %d", dataset.ErrTooManyPoints, dataset.MaxSupportedPoints)
	}

	db, err := vecgo.Flat[int](len(records[0].Coords)).
		SquaredL2().
		Build()
	if err != nil {
		return nil, fmt.Errorf("building flat index: %w", err)
	}

	items := make([]vecgo.VectorWithData[int], len(records))
	for i, rec := range records {
		items[i] = vecgo.VectorWithData[int]{
			Vector: rec.Coords,
			Data:   rec.Index,
		}
	}

	result := db.BatchInsert(ctx, items)
	for i, err := range result.Errors {
		if err != nil {
			return nil, fmt.Errorf("inserting record %d: %w", records[i].Index, err)
		}
	}

	return &FlatIndex{db: db, size: len(records)}, nil
}

// Query returns every indexed record within radius of rec, excluding rec
// itself. Distances are squared L2; a record qualifies iff its squared
// distance is at most radius².
func (ix *FlatIndex) Query(ctx context.Context, rec *dataset.Record, radius float64) ([]Neighbor, error) {
	results, err := ix.db.KNNSearch(ctx, rec.Coords, ix.size)
	if err != nil {
		return nil, fmt.Errorf("radius query for record %d: %w", rec.Index, err)
	}

	r2 := radius * radius
	neighbors := make([]Neighbor, 0, len(results))

	for _, res := range results {
		d := float64(res.Distance)
		if d > r2 || res.Data == rec.Index {
			continue
		}

		neighbors = append(neighbors, Neighbor{Index: res.Data, Distance: d})
	}

	return neighbors, nil
}

// Size returns the number of indexed records.
func (ix *FlatIndex) Size() int {
	return ix.size
}

// Close releases the underlying index.
func (ix *FlatIndex) Close() error {
	return ix.db.Close()
}
