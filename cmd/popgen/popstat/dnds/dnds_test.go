// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dnds

import (
	"bytes"
	"testing"

	"github.com/js-arias/popgen/project"
)

func TestPrintRates(t *testing.T) {
	cls := []project.Cluster{
		{ID: "clu01", Path: "clu01.fas"},
		{ID: "clu02", Path: "clu02.fas"},
		{ID: "clu03", Path: "clu03.fas"},
	}
	res := [][]pairRate{
		{{seq1: "tx1", seq2: "tx2", omega: 0.1096, dn: 0.0028, ds: 0.0258}},
		nil,
		{{seq1: "tx1", seq2: "tx3", omega: 0.2, dn: 0.01, ds: 0.05}},
	}

	var buf bytes.Buffer
	printRates(&buf, cls, res)

	want := "cluster\tseq1\tseq2\tomega\tdn\tds\n" +
		"clu01\ttx1\ttx2\t0.1096\t0.0028\t0.0258\n" +
		"clu02\tNA\tNA\tNA\tNA\tNA\n" +
		"clu03\ttx1\ttx3\t0.2\t0.01\t0.05\n"
	if g := buf.String(); g != want {
		t.Errorf("table: got:\n%s\nwant:\n%s", g, want)
	}
}
