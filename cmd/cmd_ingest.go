// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/jcodagnone/tocayo/dataset"
	"github.com/jcodagnone/tocayo/utils/textutils"
)

var dbPath string

func openDatabase() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return db, nil
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <vecfile>",
	Short: "Load an annotated vector dataset into the local database",
	Long: `Parses a dataset file (one record per line: coordinates followed by the
FILE/MSG/TEMPLATEID/REVNUM/LINESTART/LINEEND annotation) and stores the
records for later clustering runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		records, err := dataset.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := dataset.NewSQLRepository(db)
		if err := repo.CreateSchema(); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}

		if err := repo.BulkInsert(records); err != nil {
			return fmt.Errorf("storing records: %w", err)
		}

		log.Printf("Ingested %s records from %s into %s",
			textutils.FormatInt(int64(len(records))), args[0], dbPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "tocayo.duckdb", "path to the DuckDB database")
}
