// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package popgendb implements the SQLite database
// used as a sink for population statistics.
//
// The database is append only:
// rows are inserted by the popstat commands
// and never updated or deleted.
package popgendb

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/js-arias/popgen/popstat"
)

// DB is a population statistics database.
type DB struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS fst (
		run     TEXT NOT NULL,
		cluster TEXT NOT NULL,
		pop1    TEXT NOT NULL,
		pop2    TEXT NOT NULL,
		fst     REAL NOT NULL,
		UNIQUE (run, cluster, pop1, pop2)
	)`,
	`CREATE TABLE IF NOT EXISTS seqid (
		run     TEXT NOT NULL,
		cluster TEXT NOT NULL,
		pop1    TEXT NOT NULL,
		pop2    TEXT NOT NULL,
		n       INTEGER NOT NULL,
		min     REAL NOT NULL,
		q1      REAL NOT NULL,
		mean    REAL NOT NULL,
		median  REAL NOT NULL,
		q3      REAL NOT NULL,
		max     REAL NOT NULL,
		stdev   REAL,
		UNIQUE (run, cluster, pop1, pop2)
	)`,
	`CREATE TABLE IF NOT EXISTS dnds (
		run     TEXT NOT NULL,
		cluster TEXT NOT NULL,
		seq1    TEXT NOT NULL,
		seq2    TEXT NOT NULL,
		omega   REAL NOT NULL,
		dn      REAL NOT NULL,
		ds      REAL NOT NULL,
		UNIQUE (run, cluster, seq1, seq2)
	)`,
	`CREATE TABLE IF NOT EXISTS phi (
		run     TEXT NOT NULL,
		cluster TEXT NOT NULL,
		pvalue  REAL,
		UNIQUE (run, cluster)
	)`,
}

// Open opens a population statistics database,
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

// AddFst adds a pairwise Fst value
// for a population pair
// of a gene cluster.
func (d *DB) AddFst(run, cluster, pop1, pop2 string, fst float64) error {
	_, err := d.db.Exec(`INSERT INTO fst (run, cluster, pop1, pop2, fst) VALUES (?, ?, ?, ?, ?)`,
		run, cluster, pop1, pop2, fst)
	if err != nil {
		return fmt.Errorf("fst: run %q: cluster %q: %v", run, cluster, err)
	}
	return nil
}

// AddSeqID adds the descriptive summary
// of pairwise sequence identities
// between two populations
// of a gene cluster.
func (d *DB) AddSeqID(run, cluster, pop1, pop2 string, s popstat.Statistic) error {
	_, err := d.db.Exec(`INSERT INTO seqid (run, cluster, pop1, pop2, n, min, q1, mean, median, q3, max, stdev)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run, cluster, pop1, pop2, s.N, s.Min, s.Q1, s.Mean, s.Median, s.Q3, s.Max, nullNaN(s.StdDev))
	if err != nil {
		return fmt.Errorf("seqid: run %q: cluster %q: %v", run, cluster, err)
	}
	return nil
}

// AddDnDs adds a pairwise dN/dS estimate
// for two sequences of a gene cluster.
func (d *DB) AddDnDs(run, cluster, seq1, seq2 string, omega, dn, ds float64) error {
	_, err := d.db.Exec(`INSERT INTO dnds (run, cluster, seq1, seq2, omega, dn, ds) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run, cluster, seq1, seq2, omega, dn, ds)
	if err != nil {
		return fmt.Errorf("dnds: run %q: cluster %q: %v", run, cluster, err)
	}
	return nil
}

// AddPhi adds the p-value
// of the Phi recombination test
// of a gene cluster.
// A NaN p-value
// (the test could not be calculated)
// is stored as a null.
func (d *DB) AddPhi(run, cluster string, p float64) error {
	_, err := d.db.Exec(`INSERT INTO phi (run, cluster, pvalue) VALUES (?, ?, ?)`,
		run, cluster, nullNaN(p))
	if err != nil {
		return fmt.Errorf("phi: run %q: cluster %q: %v", run, cluster, err)
	}
	return nil
}

// FstValues returns all the Fst values
// stored for a given run.
func (d *DB) FstValues(run string) ([]float64, error) {
	rows, err := d.db.Query(`SELECT fst FROM fst WHERE run = ? ORDER BY cluster, pop1, pop2`, run)
	if err != nil {
		return nil, fmt.Errorf("fst: run %q: %v", run, err)
	}
	defer rows.Close()

	var vs []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("fst: run %q: %v", run, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fst: run %q: %v", run, err)
	}
	return vs, nil
}

func nullNaN(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
