// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package population_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/popgen/population"
)

func TestData(t *testing.T) {
	d := newData()

	testData(t, "data", d)
}

func TestTSV(t *testing.T) {
	d := newData()

	var w bytes.Buffer
	if err := d.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	r := strings.NewReader(w.String())
	nd, err := population.ReadTSV(r)
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testData(t, "tsv", nd)
}

func TestReassign(t *testing.T) {
	d := newData()
	d.Add("M.24.YNP", "kamchatka")

	if p := d.PopOf("M.24.YNP"); p != "kamchatka" {
		t.Errorf("reassign: got population %q, want %q", p, "kamchatka")
	}
	want := []string{"M.25.YNP"}
	if g := d.Members("yellowstone"); !reflect.DeepEqual(g, want) {
		t.Errorf("reassign: yellowstone members: got %v, want %v", g, want)
	}
}

func newData() *population.Data {
	d := population.New()

	d.Add("M.24.YNP", "yellowstone")
	d.Add("M.25.YNP", "yellowstone")
	d.Add("M.31.KAM", "kamchatka")
	d.Add("M.33.KAM", "kamchatka")
	d.Add("M.40.LAS", "lassen")
	return d
}

func testData(t testing.TB, name string, d *population.Data) {
	t.Helper()

	taxa := []string{"M.24.YNP", "M.25.YNP", "M.31.KAM", "M.33.KAM", "M.40.LAS"}
	if g := d.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	pops := []string{"kamchatka", "lassen", "yellowstone"}
	if g := d.Pops(); !reflect.DeepEqual(g, pops) {
		t.Errorf("%s: populations: got %v, want %v", name, g, pops)
	}

	members := map[string][]string{
		"yellowstone": {"M.24.YNP", "M.25.YNP"},
		"kamchatka":   {"M.31.KAM", "M.33.KAM"},
		"lassen":      {"M.40.LAS"},
	}
	for p, w := range members {
		if g := d.Members(p); !reflect.DeepEqual(g, w) {
			t.Errorf("%s: members of %q: got %v, want %v", name, p, g, w)
		}
	}

	for tx, w := range map[string]string{"M.24.YNP": "yellowstone", "M.31.KAM": "kamchatka"} {
		if g := d.PopOf(tx); g != w {
			t.Errorf("%s: population of %q: got %q, want %q", name, tx, g, w)
		}
	}

	pairs := [][2]string{
		{"kamchatka", "lassen"},
		{"kamchatka", "yellowstone"},
		{"lassen", "yellowstone"},
	}
	if g := d.Pairs(); !reflect.DeepEqual(g, pairs) {
		t.Errorf("%s: pairs: got %v, want %v", name, g, pairs)
	}
}
