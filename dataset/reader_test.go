// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := `
# near-duplicate fixture
1.0 0.0 FILE:a.c,MSG:{first},TEMPLATEID:0,REVNUM:1
0.0 1.0 FILE:b.c,MSG:{second},TEMPLATEID:1,REVNUM:2

1.0 1.0 TEMPLATEID:2
`

	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	for i, rec := range records {
		if rec.Index != i {
			t.Fatalf("record %d has index %d", i, rec.Index)
		}
	}

	if records[1].File != "b.c" || records[1].TemplateID != 1 {
		t.Fatalf("record 1 parsed wrong: %+v", records[1])
	}
}

func TestReadDimensionMismatch(t *testing.T) {
	input := "1.0 2.0 TEMPLATEID:0\n1.0 TEMPLATEID:1\n"

	_, err := Read(strings.NewReader(input))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
