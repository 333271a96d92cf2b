// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/popgen/recon"
)

var rangerOut = ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Species Tree:
((A,B)n1,C)n2;

Gene Tree:
((A_1,B_1)m1,(A_2,C_1)m2)m3;

Reconciliation:
A_1: Leaf Node
B_1: Leaf Node
A_2: Leaf Node
C_1: Leaf Node
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1
m2 = LCA[A_2, C_1]: Transfer, Mapping --> A, Recipient --> C
m3 = LCA[A_1, C_1]: Duplication, Mapping --> n2
The minimum reconciliation cost is: 5 (Duplications: 2, Transfers: 1, Losses: 3)

 ------------ Reconciliation for Gene Tree 2 (rooted) ------------
Reconciliation:
A_1: Leaf Node
B_1: Leaf Node
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1
The minimum reconciliation cost is: 0 (Duplications: 0, Transfers: 0, Losses: 0)
`

func TestReadReport(t *testing.T) {
	rp, err := recon.ReadReport(strings.NewReader(rangerOut))
	if err != nil {
		t.Fatalf("unable to read report: %v", err)
	}

	events := []recon.Event{
		{TreeID: 1, Node: "A_1", Category: recon.Leaf},
		{TreeID: 1, Node: "B_1", Category: recon.Leaf},
		{TreeID: 1, Node: "A_2", Category: recon.Leaf},
		{TreeID: 1, Node: "C_1", Category: recon.Leaf},
		{TreeID: 1, Node: "A_1|B_1", Category: recon.Speciation, Mapping: "A|B"},
		{TreeID: 1, Node: "A_2|C_1", Category: recon.Transfer, Mapping: "A", Recipient: "C"},
		{TreeID: 1, Node: "A_1|C_1", Category: recon.Duplication, Mapping: "A|C"},
		{TreeID: 2, Node: "A_1", Category: recon.Leaf},
		{TreeID: 2, Node: "B_1", Category: recon.Leaf},
		{TreeID: 2, Node: "A_1|B_1", Category: recon.Speciation, Mapping: "A|B"},
	}
	if !reflect.DeepEqual(rp.Events, events) {
		t.Errorf("events: got %v, want %v", rp.Events, events)
	}

	summaries := []recon.Summary{
		{TreeID: 1, Cost: 5, Duplications: 2, Transfers: 1, Losses: 3},
		{TreeID: 2},
	}
	if !reflect.DeepEqual(rp.Summaries, summaries) {
		t.Errorf("summaries: got %v, want %v", rp.Summaries, summaries)
	}
}

func TestReadReportErrors(t *testing.T) {
	tests := map[string]string{
		"no species tree": ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Reconciliation:
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1
`,
		"bootstrap labels": `Species Tree:
((A,B)90,C);
`,
		"malformed event": ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Species Tree:
((A,B)n1,C)n2;

Reconciliation:
m1 = LCA[A_1, B_1]: Speciation
`,
		"transfer without recipient": ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Species Tree:
((A,B)n1,C)n2;

Reconciliation:
m1 = LCA[A_1, B_1]: Transfer, Mapping --> n1
`,
		"empty input": "",
	}

	for name, in := range tests {
		if _, err := recon.ReadReport(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestReadReportTruncated(t *testing.T) {
	tests := map[string]string{
		"truncated at end of input": ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Species Tree:
((A,B)n1,C)n2;

Reconciliation:
A_1: Leaf Node
B_1: Leaf Node
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1
`,
		"truncated by next tree": ` ------------ Reconciliation for Gene Tree 1 (rooted) ------------
Species Tree:
((A,B)n1,C)n2;

Reconciliation:
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1

 ------------ Reconciliation for Gene Tree 2 (rooted) ------------
Reconciliation:
m1 = LCA[A_1, B_1]: Speciation, Mapping --> n1
The minimum reconciliation cost is: 0 (Duplications: 0, Transfers: 0, Losses: 0)
`,
	}

	for name, in := range tests {
		_, err := recon.ReadReport(strings.NewReader(in))
		if err == nil {
			t.Errorf("%s: expecting error", name)
			continue
		}
		if !strings.Contains(err.Error(), "without a cost line") {
			t.Errorf("%s: got error %q, want a missing cost line error", name, err)
		}
	}
}

func TestReadReportBootstrapDiagnostic(t *testing.T) {
	in := `Species Tree:
((A,B),C);
`
	_, err := recon.ReadReport(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expecting error")
	}
	if !strings.Contains(err.Error(), "bootstrap values left in the trees") {
		t.Errorf("got error %q, want the bootstrap diagnostic", err)
	}
}

func TestTSV(t *testing.T) {
	rp, err := recon.ReadReport(strings.NewReader(rangerOut))
	if err != nil {
		t.Fatalf("unable to read report: %v", err)
	}

	var ev strings.Builder
	if err := rp.EventsTSV(&ev); err != nil {
		t.Fatalf("unable to write events: %v", err)
	}
	wantRow := "1\tA_1|C_1\tduplication\tA|C\t"
	if !strings.Contains(ev.String(), wantRow) {
		t.Errorf("events table:\n%s\nexpecting row %q", ev.String(), wantRow)
	}

	var sm strings.Builder
	if err := rp.SummaryTSV(&sm); err != nil {
		t.Fatalf("unable to write summaries: %v", err)
	}
	wantRow = "1\t5\t2\t1\t3"
	if !strings.Contains(sm.String(), wantRow) {
		t.Errorf("summary table:\n%s\nexpecting row %q", sm.String(), wantRow)
	}
}
