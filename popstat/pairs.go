// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package popstat

import (
	"fmt"

	"github.com/js-arias/popgen/align"
	"github.com/js-arias/popgen/population"
)

// BetweenGroups returns the pairwise sequence identities
// between two populations of an alignment:
// one value per pair of sequences
// in which the first sequence belongs to the first population
// and the second to the second population.
// Pairs inside a population are never compared.
func BetweenGroups(a *align.Alignment, d *population.Data, p1, p2 string) ([]float64, error) {
	m1 := d.Members(p1)
	if len(m1) == 0 {
		return nil, fmt.Errorf("population %q: no assigned taxa", p1)
	}
	m2 := d.Members(p2)
	if len(m2) == 0 {
		return nil, fmt.Errorf("population %q: no assigned taxa", p2)
	}

	vals := make([]float64, 0, len(m1)*len(m2))
	for _, t1 := range m1 {
		for _, t2 := range m2 {
			v, err := a.PairwiseIdentity(t1, t2)
			if err != nil {
				return nil, fmt.Errorf("populations %q-%q: %v", p1, p2, err)
			}
			vals = append(vals, v)
		}
	}
	return vals, nil
}
