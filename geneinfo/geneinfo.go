// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geneinfo reads the gene information table
// exported by the ITEP pangenome database
// and converts its rows into annotation features.
package geneinfo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

// A Gene is a row of an ITEP gene information table.
type Gene struct {
	ID         string
	Organism   string
	Contig     string
	Start      int // 1-based, smallest coordinate
	Stop       int // 1-based, largest coordinate
	Strand     seq.Strand
	Annotation string
}

// Read reads genes from an ITEP gene information table,
// a headerless TSV file
// with the following columns:
//
//	gene ID, organism, contig, start, stop, strand, annotation
//
// The strand column is "+" or "-".
// Start and stop are 1-based
// and given in transcription order,
// so start > stop on the minus strand;
// coordinates are stored with start always
// the smallest.
// A row with fewer columns is an error.
func Read(r io.Reader) ([]Gene, error) {
	var genes []Gene

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 7 {
			return nil, fmt.Errorf("on row %d: got %d columns, want 7", ln, len(cols))
		}

		start, err := strconv.Atoi(strings.TrimSpace(cols[3]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: start: %v", ln, err)
		}
		stop, err := strconv.Atoi(strings.TrimSpace(cols[4]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: stop: %v", ln, err)
		}

		var strand seq.Strand
		switch s := strings.TrimSpace(cols[5]); s {
		case "+":
			strand = seq.Plus
		case "-":
			strand = seq.Minus
		default:
			return nil, fmt.Errorf("on row %d: invalid strand %q", ln, s)
		}
		if start > stop {
			start, stop = stop, start
		}

		genes = append(genes, Gene{
			ID:         strings.TrimSpace(cols[0]),
			Organism:   strings.TrimSpace(cols[1]),
			Contig:     strings.TrimSpace(cols[2]),
			Start:      start,
			Stop:       stop,
			Strand:     strand,
			Annotation: strings.TrimSpace(cols[6]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return genes, nil
}

// Feature returns the gene as a GFF feature.
// Coordinates and strand are copied exactly,
// only changing the start to the 0-based
// convention used by the feature type.
func (g Gene) Feature() *gff.Feature {
	return &gff.Feature{
		SeqName:    g.Contig,
		Source:     "itep",
		Feature:    "CDS",
		FeatStart:  g.Start - 1,
		FeatEnd:    g.Stop,
		FeatStrand: g.Strand,
		FeatFrame:  gff.NoFrame,
		FeatAttributes: gff.Attributes{
			{Tag: "ID", Value: g.ID},
			{Tag: "product", Value: g.Annotation},
		},
	}
}
