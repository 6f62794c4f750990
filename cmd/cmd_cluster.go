// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/jcodagnone/tocayo/cluster"
	"github.com/jcodagnone/tocayo/dataset"
	"github.com/jcodagnone/tocayo/nn"
	"github.com/jcodagnone/tocayo/utils/textutils"
)

var errNoInput = errors.New("either --file or an ingested database is required")

type scanOptions struct {
	file       string
	radius     float64
	group      bool
	lowerBound int
	upperBound int
	memory     int64
}

var scanOpts scanOptions

// loadRecords reads the dataset from --file when given, otherwise from the
// previously ingested database.
func loadRecords() ([]*dataset.Record, error) {
	if scanOpts.file != "" {
		return dataset.Load(scanOpts.file)
	}

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: database not found at %s - run 'ingest' first", errNoInput, dbPath)
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return dataset.NewSQLRepository(db).GetAll()
}

// checkMemoryBudget refuses datasets whose vectors alone exceed the
// configured memory budget, before the index is built.
func checkMemoryBudget(records []*dataset.Record, budget int64) error {
	if len(records) == 0 {
		return errors.New("dataset is empty")
	}

	estimated := int64(len(records)) * int64(len(records[0].Coords)) * 4
	if estimated > budget {
		return fmt.Errorf("dataset needs ~%s bytes of vector storage, over the %s budget",
			textutils.FormatInt(estimated), textutils.FormatInt(budget))
	}

	return nil
}

// runScan loads the dataset, builds the index and executes one full scan
// with the given reporter. Shared by the cluster and serve commands.
func runScan(cmd *cobra.Command, reporter cluster.Reporter) (*cluster.Stats, error) {
	ctx := cmd.Context()

	records, err := loadRecords()
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	if err := checkMemoryBudget(records, scanOpts.memory); err != nil {
		return nil, err
	}

	log.Printf("Building index - %s points, dimension %d",
		textutils.FormatInt(int64(len(records))), len(records[0].Coords))

	start := time.Now()

	index, err := nn.NewFlatIndex(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	defer index.Close()

	log.Printf("Index built in %s", time.Since(start).Round(time.Millisecond))

	opts := cluster.Options{
		Radii:      []float64{scanOpts.radius},
		Group:      scanOpts.group,
		LowerBound: scanOpts.lowerBound,
		UpperBound: scanOpts.upperBound,
		Progress:   true,
	}

	scanner, err := cluster.NewScanner(records, index, opts, reporter)
	if err != nil {
		return nil, err
	}

	return scanner.Run(ctx)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Scan the dataset and report near-duplicate buckets",
	Long: `Runs one radius query per not-yet-seen record and reports the resulting
clusters: per-query buckets by default, or one accumulated group per origin
template with --group.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := runScan(cmd, cluster.NewTextReporter(os.Stdout))
		if err != nil {
			return err
		}

		log.Printf("Scan complete - %s queries in total", textutils.FormatInt(int64(stats.Queries)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.PersistentFlags().StringVarP(&scanOpts.file, "file", "f", "",
		"read the dataset from this file instead of the database")
	clusterCmd.PersistentFlags().Float64VarP(&scanOpts.radius, "radius", "R", 0,
		"clustering radius (required)")
	clusterCmd.PersistentFlags().BoolVarP(&scanOpts.group, "group", "g", false,
		"group output by origin template instead of per-query buckets")
	clusterCmd.PersistentFlags().IntVar(&scanOpts.lowerBound, "lower-bound", 1,
		"minimum bucket size to report")
	clusterCmd.PersistentFlags().IntVar(&scanOpts.upperBound, "upper-bound", 0,
		"maximum bucket size to report (0 means unbounded)")
	clusterCmd.PersistentFlags().Int64Var(&scanOpts.memory, "memory", 8e8,
		"memory budget in bytes for the index")

	_ = clusterCmd.MarkPersistentFlagRequired("radius")
}
