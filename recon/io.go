// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// EventsTSV writes the per-node events of a report
// as a TSV table,
// with the following columns:
//
//   - tree, the index of the gene tree
//   - node, the gene tree node
//   - event, the event category
//   - species, the species tree node of the event
//   - recipient, the recipient species tree node
//     (only for transfer events)
//
// Rows are written in the order in which the events
// were found in the reconciliation output.
func (rp *Report) EventsTSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"tree", "node", "event", "species", "recipient"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, e := range rp.Events {
		row := []string{
			strconv.Itoa(e.TreeID),
			e.Node,
			string(e.Category),
			e.Mapping,
			e.Recipient,
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// SummaryTSV writes the per-tree cost summaries of a report
// as a TSV table,
// with the following columns:
//
//   - tree, the index of the gene tree
//   - cost, the minimum reconciliation cost
//   - duplications
//   - transfers
//   - losses
func (rp *Report) SummaryTSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"tree", "cost", "duplications", "transfers", "losses"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, s := range rp.Summaries {
		row := []string{
			strconv.Itoa(s.TreeID),
			strconv.FormatFloat(s.Cost, 'f', -1, 64),
			strconv.Itoa(s.Duplications),
			strconv.Itoa(s.Transfers),
			strconv.Itoa(s.Losses),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
