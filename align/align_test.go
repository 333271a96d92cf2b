// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align_test

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/popgen/align"
)

var fastaBlob = `>M.24.YNP
acgtacgtac
>M.31.KAM
acgaacgtac
>M.40.LAS
ac--acgttc
`

func TestReadFasta(t *testing.T) {
	a, err := align.ReadFasta(strings.NewReader(fastaBlob))
	if err != nil {
		t.Fatalf("unable to read alignment: %v", err)
	}

	names := []string{"M.24.YNP", "M.31.KAM", "M.40.LAS"}
	if g := a.Names(); !reflect.DeepEqual(g, names) {
		t.Errorf("names: got %v, want %v", g, names)
	}
	if g := a.Len(); g != 10 {
		t.Errorf("sites: got %d, want %d", g, 10)
	}
	if g := a.Sequence("M.31.KAM"); g != "acgaacgtac" {
		t.Errorf("sequence: got %q, want %q", g, "acgaacgtac")
	}
}

func TestPairwiseIdentity(t *testing.T) {
	a := newAlignment(t)

	tests := map[string]struct {
		pair [2]string
		want float64
	}{
		"single difference": {
			pair: [2]string{"M.24.YNP", "M.31.KAM"},
			want: 0.9,
		},
		"gaps ignored": {
			pair: [2]string{"M.24.YNP", "M.40.LAS"},
			want: 7.0 / 8.0,
		},
		"same sequence": {
			pair: [2]string{"M.24.YNP", "M.24.YNP"},
			want: 1,
		},
	}
	for name, test := range tests {
		got, err := a.PairwiseIdentity(test.pair[0], test.pair[1])
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if math.Abs(got-test.want) > 1e-10 {
			t.Errorf("%s: identity of %v: got %.6f, want %.6f", name, test.pair, got, test.want)
		}
	}

	if _, err := a.PairwiseIdentity("M.24.YNP", "no-taxon"); err == nil {
		t.Errorf("identity of an unknown sequence: expecting error")
	}
}

func TestSlice(t *testing.T) {
	a := newAlignment(t)

	s, err := a.Slice(2, 6)
	if err != nil {
		t.Fatalf("unable to slice alignment: %v", err)
	}
	if g := s.Len(); g != 4 {
		t.Errorf("slice sites: got %d, want %d", g, 4)
	}
	if g := s.Sequence("M.31.KAM"); g != "gaac" {
		t.Errorf("slice sequence: got %q, want %q", g, "gaac")
	}

	if _, err := a.Slice(6, 2); err == nil {
		t.Errorf("invalid slice: expecting error")
	}
}

func TestAddErrors(t *testing.T) {
	a := newAlignment(t)

	if err := a.Add("short", "acgt"); err == nil {
		t.Errorf("unequal lengths: expecting error")
	}
	if err := a.Add("M.24.YNP", "acgtacgtac"); err == nil {
		t.Errorf("repeated name: expecting error")
	}
}

func newAlignment(t testing.TB) *align.Alignment {
	t.Helper()

	a := align.New()
	for _, s := range []struct{ name, seq string }{
		{"M.24.YNP", "acgtacgtac"},
		{"M.31.KAM", "acgaacgtac"},
		{"M.40.LAS", "ac--acgttc"},
	} {
		if err := a.Add(s.name, s.seq); err != nil {
			t.Fatalf("unable to add sequence %q: %v", s.name, err)
		}
	}
	return a
}
