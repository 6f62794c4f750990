// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import "errors"

var (
	// ErrTooManyPoints means the dataset exceeds MaxSupportedPoints.
	ErrTooManyPoints = errors.New("dataset exceeds the supported point count")

	// ErrDimensionMismatch means not all records share one dimension.
	ErrDimensionMismatch = errors.New("records have mismatched dimensions")

	errParseInt          = errors.New("invalid integer")
	errMissingTemplateID = errors.New("missing TEMPLATEID property")
	errNoCoordinates     = errors.New("line has no coordinates")
)
