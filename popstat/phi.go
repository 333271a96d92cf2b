// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package popstat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadPhi reads the p-value
// of the Phi recombination test
// from the output of the Phi program
// of the PhiPack package.
//
// The value is read from the line
//
//	PHI (Normal):  4.20e-01
//
// When Phi can not calculate the statistic
// it reports "--" as the value;
// in that case the returned p-value is NaN.
func ReadPhi(r io.Reader) (float64, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "PHI (Normal):") {
			continue
		}
		v := strings.TrimSpace(strings.TrimPrefix(line, "PHI (Normal):"))
		if v == "--" {
			return math.NaN(), nil
		}
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid Phi p-value %q: %v", v, err)
		}
		return p, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("no Phi p-value in output")
}
