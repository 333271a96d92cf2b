// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rdtldb_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/js-arias/popgen/rdtldb"
	"github.com/js-arias/popgen/recon"
)

func newReport() *recon.Report {
	return &recon.Report{
		Events: []recon.Event{
			{TreeID: 1, Node: "A_1", Category: recon.Leaf},
			{TreeID: 1, Node: "B_1", Category: recon.Leaf},
			{TreeID: 1, Node: "A_1|B_1", Category: recon.Speciation, Mapping: "A|B"},
			{TreeID: 2, Node: "A_1|C_1", Category: recon.Transfer, Mapping: "A", Recipient: "C"},
		},
		Summaries: []recon.Summary{
			{TreeID: 1, Cost: 5, Duplications: 2, Transfers: 1, Losses: 3},
			{TreeID: 2, Cost: 3, Transfers: 1, Losses: 1},
		},
	}
}

func TestDB(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rdtl.db")

	db, err := rdtldb.Open(name)
	if err != nil {
		t.Fatalf("unable to open database: %v", err)
	}
	defer db.Close()

	rp := newReport()
	if err := db.AddReport("run1", "ranger-out.txt", rp); err != nil {
		t.Fatalf("unable to add report: %v", err)
	}

	runs, err := db.Runs()
	if err != nil {
		t.Fatalf("unable to read runs: %v", err)
	}
	if want := []string{"run1"}; !reflect.DeepEqual(runs, want) {
		t.Errorf("runs: got %v, want %v", runs, want)
	}

	sum, err := db.Summaries("run1")
	if err != nil {
		t.Fatalf("unable to read summaries: %v", err)
	}
	if !reflect.DeepEqual(sum, rp.Summaries) {
		t.Errorf("summaries: got %v, want %v", sum, rp.Summaries)
	}
}

// A run identifier can only be loaded once.
func TestDBRepeatedRun(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rdtl.db")

	db, err := rdtldb.Open(name)
	if err != nil {
		t.Fatalf("unable to open database: %v", err)
	}
	defer db.Close()

	rp := newReport()
	if err := db.AddReport("run1", "ranger-out.txt", rp); err != nil {
		t.Fatalf("unable to add report: %v", err)
	}
	if err := db.AddReport("run1", "ranger-out.txt", rp); err == nil {
		t.Errorf("repeated run: expecting error")
	}

	// the failed load must not leave partial rows
	sum, err := db.Summaries("run1")
	if err != nil {
		t.Fatalf("unable to read summaries: %v", err)
	}
	if len(sum) != len(rp.Summaries) {
		t.Errorf("summaries: got %d rows, want %d", len(sum), len(rp.Summaries))
	}
}
