// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package popstat_test

import (
	"math"
	"testing"

	"github.com/js-arias/popgen/align"
	"github.com/js-arias/popgen/popstat"
	"github.com/js-arias/popgen/population"
)

func TestDescribe(t *testing.T) {
	s := popstat.Describe([]float64{5, 3, 1, 4, 2})

	if s.N != 5 {
		t.Errorf("n: got %d, want %d", s.N, 5)
	}
	want := popstat.Statistic{
		N:      5,
		Min:    1,
		Q1:     2,
		Mean:   3,
		Median: 3,
		Q3:     4,
		Max:    5,
		StdDev: math.Sqrt(2.5),
	}
	for _, v := range []struct {
		name      string
		got, want float64
	}{
		{"min", s.Min, want.Min},
		{"q1", s.Q1, want.Q1},
		{"mean", s.Mean, want.Mean},
		{"median", s.Median, want.Median},
		{"q3", s.Q3, want.Q3},
		{"max", s.Max, want.Max},
		{"stdev", s.StdDev, want.StdDev},
	} {
		if math.Abs(v.got-v.want) > 1e-10 {
			t.Errorf("%s: got %.6f, want %.6f", v.name, v.got, v.want)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	s := popstat.Describe(nil)
	if s.N != 0 {
		t.Errorf("n: got %d, want %d", s.N, 0)
	}
}

func TestBetweenGroups(t *testing.T) {
	a := align.New()
	for _, s := range []struct{ name, seq string }{
		{"a1", "aaaaaaaaaa"},
		{"a2", "aaaaaaaaaa"},
		{"a3", "aaaaaaaaaa"},
		{"b1", "aaaaaaaaat"},
		{"b2", "aaaaaaaatt"},
	} {
		if err := a.Add(s.name, s.seq); err != nil {
			t.Fatalf("unable to add sequence %q: %v", s.name, err)
		}
	}

	d := population.New()
	d.Add("a1", "north")
	d.Add("a2", "north")
	d.Add("a3", "north")
	d.Add("b1", "south")
	d.Add("b2", "south")

	vals, err := popstat.BetweenGroups(a, d, "north", "south")
	if err != nil {
		t.Fatalf("unable to compare populations: %v", err)
	}

	// 3x2 comparisons between the groups,
	// never within a group
	if len(vals) != 6 {
		t.Fatalf("comparisons: got %d, want %d", len(vals), 6)
	}

	s := popstat.Describe(vals)
	if math.Abs(s.Mean-0.85) > 1e-10 {
		t.Errorf("mean: got %.6f, want %.6f", s.Mean, 0.85)
	}
	if math.Abs(s.Median-0.8) > 1e-10 {
		t.Errorf("median: got %.6f, want %.6f", s.Median, 0.8)
	}

	if _, err := popstat.BetweenGroups(a, d, "north", "east"); err == nil {
		t.Errorf("unknown population: expecting error")
	}
}
