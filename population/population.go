// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package population provides the assignment
// of a set of taxa into populations.
package population

import (
	"slices"
	"strings"
)

// Data is the assignment of a set of taxa
// into named populations.
// Each taxon belongs to a single population.
type Data struct {
	taxon map[string]string
	pops  map[string]map[string]bool
}

// New creates a new empty data set.
func New() *Data {
	return &Data{
		taxon: make(map[string]string),
		pops:  make(map[string]map[string]bool),
	}
}

// Add adds a taxon to a population.
// If the taxon was already assigned,
// it will be moved to the new population.
func (d *Data) Add(taxon, pop string) {
	taxon = canon(taxon)
	pop = canon(pop)
	if taxon == "" || pop == "" {
		return
	}

	if prev, ok := d.taxon[taxon]; ok {
		delete(d.pops[prev], taxon)
		if len(d.pops[prev]) == 0 {
			delete(d.pops, prev)
		}
	}

	d.taxon[taxon] = pop
	p, ok := d.pops[pop]
	if !ok {
		p = make(map[string]bool)
		d.pops[pop] = p
	}
	p[taxon] = true
}

// Members returns the taxa assigned
// to a given population.
func (d *Data) Members(pop string) []string {
	pop = canon(pop)
	p, ok := d.pops[pop]
	if !ok {
		return nil
	}
	members := make([]string, 0, len(p))
	for tx := range p {
		members = append(members, tx)
	}
	slices.Sort(members)
	return members
}

// Pairs returns all ordered pairs
// of different populations in the data set,
// with the first element always smaller
// than the second.
func (d *Data) Pairs() [][2]string {
	pops := d.Pops()
	var pairs [][2]string
	for i, a := range pops {
		for _, b := range pops[i+1:] {
			pairs = append(pairs, [2]string{a, b})
		}
	}
	return pairs
}

// PopOf returns the population assigned
// to a taxon,
// or an empty string if the taxon is not
// in the data set.
func (d *Data) PopOf(taxon string) string {
	return d.taxon[canon(taxon)]
}

// Pops returns the populations defined
// in the data set.
func (d *Data) Pops() []string {
	pops := make([]string, 0, len(d.pops))
	for p := range d.pops {
		pops = append(pops, p)
	}
	slices.Sort(pops)
	return pops
}

// Taxa returns the taxa assigned to a population
// in the data set.
func (d *Data) Taxa() []string {
	taxa := make([]string, 0, len(d.taxon))
	for tx := range d.taxon {
		taxa = append(taxa, tx)
	}
	slices.Sort(taxa)
	return taxa
}

// Canon returns a name with its spacing
// in canonical form.
func canon(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
