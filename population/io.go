// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package population

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads the assignment of a set of taxa
// into populations
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the name of the taxon
//   - population, the name of the assigned population
//
// Here is an example file:
//
//	taxon	population
//	M.24.YNP	yellowstone
//	M.25.YNP	yellowstone
//	M.31.KAM	kamchatka
//	M.33.KAM	kamchatka
func ReadTSV(r io.Reader) (*Data, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"taxon", "population"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	d := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "taxon"
		tax := canon(row[fields[f]])
		if tax == "" {
			continue
		}

		f = "population"
		pop := canon(row[fields[f]])
		if pop == "" {
			continue
		}

		d.Add(tax, pop)
	}
	return d, nil
}

// TSV writes population assignments as a TSV file.
func (d *Data) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"taxon", "population"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	taxa := d.Taxa()
	for _, tx := range taxa {
		row := []string{
			tx,
			d.taxon[tx],
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
