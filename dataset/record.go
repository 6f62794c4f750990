// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset handles the annotated vector dataset: parsing, the
// immutable record model, and DuckDB persistence.
package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcodagnone/tocayo/utils/textutils"
	"github.com/jcodagnone/tocayo/vector"
)

// MaxSupportedPoints is the largest dataset a single run supports. Loading
// more records is a configuration error, refused before any scan starts.
const MaxSupportedPoints = 1 << 20

// Record is one revision of a template/document: a feature vector plus the
// typed properties extracted from its annotation. Records are created once
// at load time and never mutated; Index is stable for the whole run.
type Record struct {
	Index      int
	Coords     vector.Vector
	TemplateID int
	RevNum     int
	LineStart  int
	LineEnd    int
	File       string
	Msg        string
}

// MsgKey returns an accent-folded, lowercased version of the commit message,
// usable as a stable display key.
func (r *Record) MsgKey() string {
	return textutils.LowerASCIIFolding(r.Msg)
}

// String formats the record the way reports print a query point.
func (r *Record) String() string {
	return fmt.Sprintf("%05d TID:%d FILE %s REVNUM: %d MSG:%s",
		r.Index, r.TemplateID, r.File, r.RevNum, r.Msg)
}

// Annotation property patterns. The annotation tail of a dataset line is a
// comma-separated tag list; values run until the next comma, except MSG
// whose value is a brace-delimited free-form string.
var (
	reFile       = regexp.MustCompile(`FILE:([^,]+)`)
	reMsg        = regexp.MustCompile(`MSG:(\{[^}]+\})`)
	reTemplateID = regexp.MustCompile(`TEMPLATEID:([^,]+)`)
	reRevNum     = regexp.MustCompile(`REVNUM:([^,]+)`)
	reLineStart  = regexp.MustCompile(`LINESTART:([^,]+)`)
	reLineEnd    = regexp.MustCompile(`LINEEND:([^,]+)`)

	// First property tag marks where coordinates end and the annotation begins.
	reAnnotationStart = regexp.MustCompile(`(FILE|MSG|TEMPLATEID|REVNUM|LINESTART|LINEEND):`)
)

func stringProp(re *regexp.Regexp, annotation string) string {
	m := re.FindStringSubmatch(annotation)
	if m == nil {
		return ""
	}

	return strings.TrimSpace(m[1])
}

func intProp(re *regexp.Regexp, annotation string) (int, bool, error) {
	s := stringProp(re, annotation)
	if s == "" {
		return 0, false, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("%w %q: %w", errParseInt, s, err)
	}

	return n, true, nil
}

// ParseRecord parses one dataset line into a Record. The line holds the
// whitespace-separated float coordinates followed by the annotation tail.
// TEMPLATEID is mandatory; the remaining properties default to zero values
// when absent.
func ParseRecord(index int, line string) (*Record, error) {
	coordsPart, annotation := line, ""
	if loc := reAnnotationStart.FindStringIndex(line); loc != nil {
		coordsPart, annotation = line[:loc[0]], line[loc[0]:]
	}

	fields := strings.Fields(coordsPart)
	if len(fields) == 0 {
		return nil, errNoCoordinates
	}

	coords := make(vector.Vector, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing coordinate %d %q: %w", i, f, err)
		}

		coords[i] = float32(v)
	}

	tid, ok, err := intProp(reTemplateID, annotation)
	if err != nil {
		return nil, fmt.Errorf("parsing TEMPLATEID: %w", err)
	}

	if !ok {
		return nil, errMissingTemplateID
	}

	r := &Record{
		Index:      index,
		Coords:     coords,
		TemplateID: tid,
		File:       stringProp(reFile, annotation),
		Msg:        stringProp(reMsg, annotation),
	}

	for _, p := range []struct {
		re   *regexp.Regexp
		name string
		dst  *int
	}{
		{reRevNum, "REVNUM", &r.RevNum},
		{reLineStart, "LINESTART", &r.LineStart},
		{reLineEnd, "LINEEND", &r.LineEnd},
	} {
		n, _, err := intProp(p.re, annotation)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p.name, err)
		}

		*p.dst = n
	}

	return r, nil
}
