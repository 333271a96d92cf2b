// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sptree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
)

// ReadTSV reads a collection of species trees
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the tree
//   - newick, the tree in newick format
//
// Here is an example file:
//
//	tree	newick
//	sulfolobus	((A,B)n1,C)n2;
//
// Every tree is validated as it is added,
// so a file with an invalid species tree
// can not be read.
func ReadTSV(r io.Reader) (*Collection, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range []string{"tree", "newick"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := NewCollection()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		t, err := newick.NewParser(strings.NewReader(row[fields["newick"]])).Parse()
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if err := c.Add(row[fields["tree"]], t); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return c, nil
}

// TSV writes a collection of species trees as a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"tree", "newick"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, n := range c.names {
		row := []string{
			n,
			c.trees[n].Newick(),
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
