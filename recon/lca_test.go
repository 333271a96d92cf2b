// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon_test

import (
	"strings"
	"testing"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/js-arias/popgen/recon"
)

func TestSpeciesIndex(t *testing.T) {
	idx := newIndex(t, "(((A,B)n1,(C,D)n2)n3,E)n4;")

	fingerprints := map[string]string{
		"n1": "A|B",
		"n2": "C|D",
		"n3": "A|C",
		"n4": "A|E",
	}
	for label, want := range fingerprints {
		got, ok := idx.Fingerprint(label)
		if !ok {
			t.Errorf("node %q: not in index", label)
			continue
		}
		if got != want {
			t.Errorf("node %q: got fingerprint %q, want %q", label, got, want)
		}
	}

	if g := idx.Resolve("n1"); g != "A|B" {
		t.Errorf("resolve internal node: got %q, want %q", g, "A|B")
	}
	if g := idx.Resolve("A"); g != "A" {
		t.Errorf("resolve terminal: got %q, want %q", g, "A")
	}
}

func TestSpeciesIndexErrors(t *testing.T) {
	tests := map[string]string{
		"unlabeled internal node": "((A,B),C)n2;",
		"repeated labels":         "((A,B)100,(C,D)100)n3;",
	}
	for name, nwk := range tests {
		tr, err := newick.NewParser(strings.NewReader(nwk)).Parse()
		if err != nil {
			t.Fatalf("%s: invalid test newick: %v", name, err)
		}
		_, err = recon.NewSpeciesIndex(tr)
		if err == nil {
			t.Errorf("%s: expecting error", name)
			continue
		}
		if !strings.Contains(err.Error(), "bootstrap values left in the trees") {
			t.Errorf("%s: got error %q, want the bootstrap diagnostic", name, err)
		}
	}
}

func newIndex(t testing.TB, nwk string) *recon.SpeciesIndex {
	t.Helper()

	tr, err := newick.NewParser(strings.NewReader(nwk)).Parse()
	if err != nil {
		t.Fatalf("invalid test newick: %v", err)
	}
	idx, err := recon.NewSpeciesIndex(tr)
	if err != nil {
		t.Fatalf("unable to build index: %v", err)
	}
	return idx
}
