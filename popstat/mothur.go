// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package popstat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A PairDist is the distance between two named sequences.
type PairDist struct {
	Seq1, Seq2 string
	Dist       float64
}

// ReadMothurDist reads a pairwise distance file
// in the column format written by mothur
// (dist.seqs with output=column):
// one line per sequence pair,
// with the two sequence names and the distance.
// A line with any other number of fields
// is an error.
func ReadMothurDist(r io.Reader) ([]PairDist, error) {
	var ds []PairDist

	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("on line %d: got %d fields, want 3", ln, len(fields))
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
		ds = append(ds, PairDist{
			Seq1: fields[0],
			Seq2: fields[1],
			Dist: v,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}
