// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Load reads an annotated vector dataset file and assigns stable indices
// 0..N-1 in file order. Blank lines and lines starting with '#' are skipped.
func Load(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		if fi, err := f.Stat(); err == nil {
			bar = progressbar.NewOptions64(fi.Size(),
				progressbar.OptionSetDescription("Loading "+path),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
		}
	}

	var r io.Reader = f
	if bar != nil {
		r = io.TeeReader(f, bar)
	}

	return Read(r)
}

// Read parses records from r. See Load.
func Read(r io.Reader) ([]*Record, error) {
	var records []*Record

	dimension := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for lineno := 0; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := ParseRecord(len(records), line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno+1, err)
		}

		if dimension == 0 {
			dimension = len(rec.Coords)
		} else if len(rec.Coords) != dimension {
			return nil, fmt.Errorf("line %d: %w: expected %d got %d",
				lineno+1, ErrDimensionMismatch, dimension, len(rec.Coords))
		}

		if len(records) >= MaxSupportedPoints {
			return nil, fmt.Errorf("%w: at most %d", ErrTooManyPoints, MaxSupportedPoints)
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	return records, nil
}
