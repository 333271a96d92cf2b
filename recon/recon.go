// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package recon reads the output
// of a gene tree-species tree reconciliation program
// such as Ranger-DTL
// and turns it into a table of per-node events
// and a table of per-tree cost summaries.
package recon

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
)

// Category is the reconciliation event
// inferred for a gene tree node.
type Category string

// Valid event categories.
const (
	Leaf        Category = "leaf"
	Speciation  Category = "speciation"
	Duplication Category = "duplication"
	Transfer    Category = "transfer"
)

// An Event is the reconciliation event
// of a single gene tree node.
type Event struct {
	// TreeID is the index of the gene tree
	// in the reconciliation report.
	TreeID int

	// Node identifies the gene tree node.
	// Internal nodes are identified
	// by the fingerprint of a pair of terminals,
	// terminal nodes by their label.
	Node string

	Category Category

	// Mapping is the species tree node
	// in which the event happens,
	// resolved to a terminal pair fingerprint
	// when the node is internal.
	// It is empty for leaf events.
	Mapping string

	// Recipient is the species tree node
	// that receives the transferred gene.
	// It is only defined for transfer events.
	Recipient string
}

// A Summary is the reconciliation cost
// of a single gene tree.
type Summary struct {
	TreeID       int
	Cost         float64
	Duplications int
	Transfers    int
	Losses       int
}

// A Report is the parsed content
// of a reconciliation output stream.
// Events and summaries are stored
// in the order in which they were found.
type Report struct {
	Events    []Event
	Summaries []Summary

	// Index is the species tree index
	// built from the tree embedded in the report.
	Index *SpeciesIndex
}

var (
	treeRx  = regexp.MustCompile(`Reconciliation for Gene Tree\s+(\d+)`)
	eventRx = regexp.MustCompile(`^(\S+)\s*=\s*LCA\[([^,\]]+),\s*([^\]]+)\]:\s*(Speciation|Duplication|Transfer),\s*Mapping\s*-->\s*(\S+?)(?:,\s*Recipient\s*-->\s*(\S+))?$`)
	leafRx  = regexp.MustCompile(`^(\S+):\s*Leaf Node`)
	costRx  = regexp.MustCompile(`^The minimum reconciliation cost is:\s*([0-9.]+)\s*\(Duplications:\s*(\d+),\s*Transfers:\s*(\d+),\s*Losses:\s*(\d+)\)`)
)

// ReadReport reads a reconciliation output stream.
//
// The stream contains a single species tree,
// written in newick after a "Species Tree:" header,
// and one block per gene tree.
// Each block starts with a header line
// with the index of the gene tree,
// then a "Reconciliation:" line,
// one line per gene tree node,
// and a final line with the minimum reconciliation cost
// and the event counts.
//
// The species tree must appear
// before the first reconciliation block,
// so internal node labels can be resolved
// to terminal pair fingerprints.
// Inside a reconciliation block
// any line that can not be parsed as an event
// is an error.
// The cost line closes a block;
// a block truncated before its cost line
// is an error.
func ReadReport(r io.Reader) (*Report, error) {
	rp := &Report{}

	curTree := -1
	inEvents := false
	speciesNext := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())

		if m := treeRx.FindStringSubmatch(line); m != nil {
			if inEvents {
				return nil, fmt.Errorf("on line %d: tree %d: reconciliation block without a cost line", ln, curTree)
			}
			id, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("on line %d: invalid tree index: %v", ln, err)
			}
			curTree = id
			continue
		}

		if inEvents {
			if err := rp.addLine(curTree, line); err != nil {
				return nil, fmt.Errorf("on line %d: %v", ln, err)
			}
			if len(rp.Summaries) > 0 && rp.Summaries[len(rp.Summaries)-1].TreeID == curTree {
				inEvents = false
			}
			continue
		}

		if strings.HasPrefix(line, "Species Tree:") {
			if rp.Index == nil {
				speciesNext = true
			}
			continue
		}
		if speciesNext && line != "" {
			t, err := newick.NewParser(strings.NewReader(line)).Parse()
			if err != nil {
				return nil, fmt.Errorf("on line %d: invalid species tree: %v", ln, err)
			}
			idx, err := NewSpeciesIndex(t)
			if err != nil {
				return nil, fmt.Errorf("on line %d: %v", ln, err)
			}
			rp.Index = idx
			speciesNext = false
			continue
		}

		if strings.HasPrefix(line, "Reconciliation:") {
			if rp.Index == nil {
				return nil, fmt.Errorf("on line %d: reconciliation block without a species tree", ln)
			}
			if curTree < 0 {
				return nil, fmt.Errorf("on line %d: reconciliation block without a gene tree header", ln)
			}
			inEvents = true
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inEvents {
		return nil, fmt.Errorf("tree %d: reconciliation block without a cost line", curTree)
	}
	if rp.Index == nil {
		return nil, fmt.Errorf("no species tree in input")
	}
	return rp, nil
}

// AddLine parses a single line
// of a reconciliation block.
func (rp *Report) addLine(treeID int, line string) error {
	if line == "" {
		return nil
	}

	if m := costRx.FindStringSubmatch(line); m != nil {
		cost, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fmt.Errorf("invalid cost: %v", err)
		}
		dup, _ := strconv.Atoi(m[2])
		tr, _ := strconv.Atoi(m[3])
		ls, _ := strconv.Atoi(m[4])
		rp.Summaries = append(rp.Summaries, Summary{
			TreeID:       treeID,
			Cost:         cost,
			Duplications: dup,
			Transfers:    tr,
			Losses:       ls,
		})
		return nil
	}

	if m := eventRx.FindStringSubmatch(line); m != nil {
		ev := Event{
			TreeID:   treeID,
			Node:     fingerprint(m[2], strings.TrimSpace(m[3])),
			Category: Category(strings.ToLower(m[4])),
			Mapping:  rp.Index.Resolve(m[5]),
		}
		if m[6] != "" {
			if ev.Category != Transfer {
				return fmt.Errorf("event %q: recipient on a %s event", m[1], ev.Category)
			}
			ev.Recipient = rp.Index.Resolve(m[6])
		} else if ev.Category == Transfer {
			return fmt.Errorf("event %q: transfer without recipient", m[1])
		}
		rp.Events = append(rp.Events, ev)
		return nil
	}

	if m := leafRx.FindStringSubmatch(line); m != nil {
		rp.Events = append(rp.Events, Event{
			TreeID:   treeID,
			Node:     m[1],
			Category: Leaf,
		})
		return nil
	}

	return fmt.Errorf("unrecognized reconciliation event %q", line)
}
