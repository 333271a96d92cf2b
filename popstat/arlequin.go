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

// ReadArlequinFst reads the matrix of pairwise Fst values
// from an arlecore result file
// (the "htm" file written inside the result directory).
//
// The matrix is searched after a header line
// containing "Population pairwise FSTs".
// It is a lower triangular matrix
// in which each row starts with the 1-based index
// of a population,
// followed by the distances to every previous population
// and the zero diagonal:
//
//	Population pairwise FSTs
//
//	      1       2       3
//	1   0.00000
//	2   0.05231 0.00000
//	3   0.11603 0.09071 0.00000
//
// The pops argument gives the population names
// in the order used to build the arlequin input file;
// indexes in the matrix refer to that order.
// The returned map is keyed by population pair,
// with the pair sorted as in [population.Data.Pairs].
func ReadArlequinFst(r io.Reader, pops []string) (map[[2]string]float64, error) {
	sc := bufio.NewScanner(r)

	found := false
	for sc.Scan() {
		if strings.Contains(sc.Text(), "Population pairwise FSTs") {
			found = true
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no pairwise Fst matrix in result file")
	}

	fst := make(map[[2]string]float64)
	rows := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			if rows > 0 {
				break
			}
			continue
		}
		if rows == 0 && allInts(fields) {
			// header row with column indexes
			continue
		}
		row, err := strconv.Atoi(fields[0])
		if err != nil || row != rows+1 {
			if rows > 0 {
				break
			}
			continue
		}
		if row > len(pops) {
			return nil, fmt.Errorf("pairwise Fst matrix: row %d: only %d populations defined", row, len(pops))
		}
		if len(fields) != row+1 {
			return nil, fmt.Errorf("pairwise Fst matrix: row %d: got %d values, want %d", row, len(fields)-1, row)
		}
		for col := 1; col < row; col++ {
			v, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return nil, fmt.Errorf("pairwise Fst matrix: row %d: %v", row, err)
			}
			fst[pair(pops[row-1], pops[col-1])] = v
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows < len(pops) {
		return nil, fmt.Errorf("pairwise Fst matrix: got %d rows, want %d", rows, len(pops))
	}

	return fst, nil
}

func allInts(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

func pair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
