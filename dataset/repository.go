// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"database/sql"
	"fmt"

	"github.com/jcodagnone/tocayo/vector"
)

// Repository defines the database operations for records.
type Repository interface {
	// CreateSchema creates the records table if missing.
	CreateSchema() error
	// BulkInsert saves a batch of records transactionally.
	BulkInsert(records []*Record) error
	// GetAll returns every record ordered by index.
	GetAll() ([]*Record, error)
	// Count returns the number of stored records.
	Count() (int, error)
}

type sqlRepository struct {
	db *sql.DB
}

// NewSQLRepository builds a DuckDB-backed Repository.
func NewSQLRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			idx         INTEGER PRIMARY KEY,
			coords      TEXT NOT NULL,
			template_id INTEGER NOT NULL,
			revnum      INTEGER NOT NULL,
			line_start  INTEGER NOT NULL,
			line_end    INTEGER NOT NULL,
			file        VARCHAR,
			msg         VARCHAR
		)
	`)
	if err != nil {
		return fmt.Errorf("creating records schema: %w", err)
	}

	return nil
}

func (r *sqlRepository) BulkInsert(records []*Record) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO records
			(idx, coords, template_id, revnum, line_start, line_end, file, msg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.Index,
			rec.Coords,
			rec.TemplateID,
			rec.RevNum,
			rec.LineStart,
			rec.LineEnd,
			rec.File,
			rec.Msg,
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", rec.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}

	return nil
}

func (r *sqlRepository) GetAll() ([]*Record, error) {
	rows, err := r.db.Query(`
		SELECT idx, coords, template_id, revnum, line_start, line_end, file, msg
		FROM records
		ORDER BY idx
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*Record

	for rows.Next() {
		rec := &Record{}

		var coords vector.Vector
		if err := rows.Scan(
			&rec.Index,
			&coords,
			&rec.TemplateID,
			&rec.RevNum,
			&rec.LineStart,
			&rec.LineEnd,
			&rec.File,
			&rec.Msg,
		); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		rec.Coords = coords
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

func (r *sqlRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}

	return n, nil
}
