// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rdtldb implements the SQLite database
// used as a sink for gene tree-species tree
// reconciliation results.
//
// The database is append only:
// rows are inserted by the rdtl commands
// and never updated or deleted.
package rdtldb

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/js-arias/popgen/recon"
)

// DB is a reconciliation results database.
type DB struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run     TEXT PRIMARY KEY,
		source  TEXT NOT NULL,
		created TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trees (
		run          TEXT NOT NULL,
		tree         INTEGER NOT NULL,
		cost         REAL NOT NULL,
		duplications INTEGER NOT NULL,
		transfers    INTEGER NOT NULL,
		losses       INTEGER NOT NULL,
		UNIQUE (run, tree)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		run       TEXT NOT NULL,
		tree      INTEGER NOT NULL,
		node      TEXT NOT NULL,
		event     TEXT NOT NULL,
		species   TEXT,
		recipient TEXT,
		UNIQUE (run, tree, node)
	)`,
}

// Open opens a reconciliation database,
// creating the file and the tables
// if they do not exist.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("on database %q: %v", path, err)
	}
	for _, s := range schema {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			return nil, fmt.Errorf("on database %q: %v", path, err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// AddReport stores a parsed reconciliation report
// under the given run identifier.
// The source is the name of the file
// that was parsed.
// The whole report is stored in a single transaction:
// a failed insert leaves the database untouched.
func (d *DB) AddReport(run, source string, rp *recon.Report) (err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("run %q: %v", run, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`INSERT INTO runs (run, source, created) VALUES (?, ?, ?)`,
		run, source, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("run %q: %v", run, err)
	}
	for _, s := range rp.Summaries {
		if _, err = tx.Exec(`INSERT INTO trees (run, tree, cost, duplications, transfers, losses) VALUES (?, ?, ?, ?, ?, ?)`,
			run, s.TreeID, s.Cost, s.Duplications, s.Transfers, s.Losses); err != nil {
			return fmt.Errorf("run %q: tree %d: %v", run, s.TreeID, err)
		}
	}
	for _, e := range rp.Events {
		if _, err = tx.Exec(`INSERT INTO events (run, tree, node, event, species, recipient) VALUES (?, ?, ?, ?, ?, ?)`,
			run, e.TreeID, e.Node, string(e.Category), e.Mapping, e.Recipient); err != nil {
			return fmt.Errorf("run %q: tree %d: node %q: %v", run, e.TreeID, e.Node, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("run %q: %v", run, err)
	}
	return nil
}

// Runs returns the run identifiers
// stored in the database.
func (d *DB) Runs() ([]string, error) {
	rows, err := d.db.Query(`SELECT run FROM runs ORDER BY run`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summaries returns the per-tree cost summaries
// stored for a given run.
func (d *DB) Summaries(run string) ([]recon.Summary, error) {
	rows, err := d.db.Query(`SELECT tree, cost, duplications, transfers, losses FROM trees WHERE run = ? ORDER BY tree`, run)
	if err != nil {
		return nil, fmt.Errorf("run %q: %v", run, err)
	}
	defer rows.Close()

	var sum []recon.Summary
	for rows.Next() {
		var s recon.Summary
		if err := rows.Scan(&s.TreeID, &s.Cost, &s.Duplications, &s.Transfers, &s.Losses); err != nil {
			return nil, fmt.Errorf("run %q: %v", run, err)
		}
		sum = append(sum, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run %q: %v", run, err)
	}
	return sum, nil
}
