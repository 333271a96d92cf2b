// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package geneinfo_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/biogo/biogo/seq"
	"github.com/js-arias/popgen/geneinfo"
)

var geneInfoBlob = "fig|1075089.3.peg.1\tSulfolobus islandicus M.24.YNP\tcontig00001\t100\t1299\t+\tputative transposase\n" +
	"fig|1075089.3.peg.2\tSulfolobus islandicus M.24.YNP\tcontig00001\t2500\t1801\t-\tCRISPR-associated protein\n"

func TestRead(t *testing.T) {
	genes, err := geneinfo.Read(strings.NewReader(geneInfoBlob))
	if err != nil {
		t.Fatalf("unable to read gene info: %v", err)
	}

	want := []geneinfo.Gene{
		{
			ID:         "fig|1075089.3.peg.1",
			Organism:   "Sulfolobus islandicus M.24.YNP",
			Contig:     "contig00001",
			Start:      100,
			Stop:       1299,
			Strand:     seq.Plus,
			Annotation: "putative transposase",
		},
		{
			ID:         "fig|1075089.3.peg.2",
			Organism:   "Sulfolobus islandicus M.24.YNP",
			Contig:     "contig00001",
			Start:      1801,
			Stop:       2500,
			Strand:     seq.Minus,
			Annotation: "CRISPR-associated protein",
		},
	}
	if !reflect.DeepEqual(genes, want) {
		t.Errorf("genes: got %v, want %v", genes, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"missing columns": "fig|1.peg.1\tcontig00001\t100\t1299\t+\n",
		"invalid strand":  "fig|1.peg.1\torg\tcontig00001\t100\t1299\tplus\tx\n",
		"invalid start":   "fig|1.peg.1\torg\tcontig00001\tabc\t1299\t+\tx\n",
	}
	for name, in := range tests {
		if _, err := geneinfo.Read(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

// A gene converted to a feature must keep
// its coordinates and strand untouched.
func TestFeature(t *testing.T) {
	genes, err := geneinfo.Read(strings.NewReader(geneInfoBlob))
	if err != nil {
		t.Fatalf("unable to read gene info: %v", err)
	}

	for _, g := range genes {
		f := g.Feature()
		if f.FeatStart+1 != g.Start {
			t.Errorf("gene %q: start: got %d, want %d", g.ID, f.FeatStart+1, g.Start)
		}
		if f.FeatEnd != g.Stop {
			t.Errorf("gene %q: end: got %d, want %d", g.ID, f.FeatEnd, g.Stop)
		}
		if f.FeatStrand != g.Strand {
			t.Errorf("gene %q: strand: got %v, want %v", g.ID, f.FeatStrand, g.Strand)
		}
		if f.SeqName != g.Contig {
			t.Errorf("gene %q: sequence: got %q, want %q", g.ID, f.SeqName, g.Contig)
		}
	}
}
