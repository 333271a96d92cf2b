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

// A PairRate is the substitution rate estimate
// for a pair of sequences,
// as calculated by the yn00 program of PAML.
// Sequences are identified by their 1-based position
// in the yn00 input file.
type PairRate struct {
	Seq1, Seq2 int
	Omega      float64
	DN         float64
	DS         float64
}

// ReadYn00 reads the pairwise dN/dS estimates
// of the Yang & Nielsen (2000) method
// from the main yn00 output file.
//
// The estimates are read from the result rows
// of the form:
//
//	2  1  67.6  230.4  0.0136  3.0843  0.1096  0.0028 +- 0.0019  0.0258 +- 0.0200
//
// that is,
// the two sequence indexes,
// S, N, t, kappa,
// omega,
// and dN and dS with their standard errors.
// Any other line is ignored.
func ReadYn00(r io.Reader) ([]PairRate, error) {
	var prs []PairRate

	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		fields := strings.Fields(sc.Text())
		if len(fields) != 13 {
			continue
		}
		s1, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		s2, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		if fields[8] != "+-" || fields[11] != "+-" {
			continue
		}

		p := PairRate{Seq1: s1, Seq2: s2}
		for _, v := range []struct {
			field int
			dst   *float64
		}{
			{6, &p.Omega},
			{7, &p.DN},
			{10, &p.DS},
		} {
			x, err := strconv.ParseFloat(fields[v.field], 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d: %v", ln, err)
			}
			*v.dst = x
		}
		prs = append(prs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(prs) == 0 {
		return nil, fmt.Errorf("no dN/dS estimates in yn00 output")
	}
	return prs, nil
}
