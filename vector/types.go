// Copyright 2026 The Tocayo Authors
//
// SPDX-License-Identifier: Apache-2.0
package vector

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is a fixed-dimension feature vector. All vectors of a dataset share
// the same dimension.
type Vector []float32

// String returns a compact space-separated representation of the Vector.
func (v Vector) String() string {
	var sb strings.Builder

	for i, c := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
	}

	return sb.String()
}

// Value implements the driver.Valuer interface for database serialization.
func (v Vector) Value() (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("vector: marshaling: %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil

		return nil
	}

	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, v)
	case string:
		return json.Unmarshal([]byte(raw), v)
	default:
		return fmt.Errorf("vector: unsupported type for Vector scan: %T", value)
	}
}

// SquaredL2 returns the squared Euclidean distance between two vectors.
// Callers take the square root only for display; comparisons against a
// radius are done in the squared domain.
func (v Vector) SquaredL2(other Vector) float64 {
	var sum float64

	for i, c := range v {
		d := float64(c) - float64(other[i])
		sum += d * d
	}

	return sum
}

// L2 returns the Euclidean distance between two vectors.
func (v Vector) L2(other Vector) float64 {
	return math.Sqrt(v.SquaredL2(other))
}
