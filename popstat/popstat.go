// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package popstat provides descriptive statistics
// of population genetic measurements,
// and parsers for the result files
// of the external programs
// used to calculate such measurements.
package popstat

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// A Statistic is a descriptive summary
// of a collection of measurements.
type Statistic struct {
	N      int
	Min    float64
	Q1     float64
	Mean   float64
	Median float64
	Q3     float64
	Max    float64
	StdDev float64
}

// Describe returns the descriptive summary
// of a collection of measurements.
// An empty collection returns the zero statistic.
func Describe(vs []float64) Statistic {
	if len(vs) == 0 {
		return Statistic{}
	}

	s := slices.Clone(vs)
	sort.Float64s(s)

	return Statistic{
		N:      len(s),
		Min:    s[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, s, nil),
		Mean:   stat.Mean(s, nil),
		Median: stat.Quantile(0.5, stat.Empirical, s, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, s, nil),
		Max:    s[len(s)-1],
		StdDev: stat.StdDev(s, nil),
	}
}
