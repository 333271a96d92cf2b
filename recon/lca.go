// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon

import (
	"fmt"

	"github.com/evolbioinfo/gotree/tree"
)

// A SpeciesIndex maps the label of an internal node
// of a species tree
// to the pair of terminals whose last common ancestor
// is that node.
//
// The pair is stored as a fingerprint
// of the form "a|b",
// with the terminal names in lexicographic order.
// The fingerprint identifies the node
// independently of the arbitrary labels
// that a reconciliation program assigns
// to internal nodes.
type SpeciesIndex struct {
	fp map[string]string
}

// NewSpeciesIndex creates the index of a species tree.
//
// Every internal node must have a unique label;
// a missing or repeated label is an error,
// the usual cause being bootstrap values
// left on the internal nodes of the input trees.
func NewSpeciesIndex(t *tree.Tree) (*SpeciesIndex, error) {
	parent := make(map[*tree.Node]*tree.Node)
	t.PostOrder(func(cur, prev *tree.Node, e *tree.Edge) bool {
		parent[cur] = prev
		return true
	})

	depth := make(map[*tree.Node]int, len(parent))
	for n := range parent {
		d := 0
		for p := parent[n]; p != nil; p = parent[p] {
			d++
		}
		depth[n] = d
	}
	lca := func(a, b *tree.Node) *tree.Node {
		for depth[a] > depth[b] {
			a = parent[a]
		}
		for depth[b] > depth[a] {
			b = parent[b]
		}
		for a != b {
			a = parent[a]
			b = parent[b]
		}
		return a
	}

	idx := &SpeciesIndex{
		fp: make(map[string]string),
	}
	for _, n := range t.Nodes() {
		if n.Tip() {
			continue
		}
		label := n.Name()
		if label == "" {
			return nil, fmt.Errorf("species tree: internal node without label (bootstrap values left in the trees?)")
		}
		if _, dup := idx.fp[label]; dup {
			return nil, fmt.Errorf("species tree: repeated internal node label %q (bootstrap values left in the trees?)", label)
		}

		leaves := leavesUnder(n, parent[n])
		var pair string
		for i, a := range leaves {
			for _, b := range leaves[i+1:] {
				if lca(a, b) == n {
					pair = fingerprint(a.Name(), b.Name())
					break
				}
			}
			if pair != "" {
				break
			}
		}
		if pair == "" {
			return nil, fmt.Errorf("species tree: no terminal pair identifies node %q (bootstrap values left in the trees?)", label)
		}
		idx.fp[label] = pair
	}
	return idx, nil
}

// Fingerprint returns the terminal pair fingerprint
// of an internal node label.
func (idx *SpeciesIndex) Fingerprint(label string) (string, bool) {
	pair, ok := idx.fp[label]
	return pair, ok
}

// Resolve returns the terminal pair fingerprint
// of a species tree node label,
// or the raw label if it is not an indexed
// internal node
// (i.e., the label of a terminal).
func (idx *SpeciesIndex) Resolve(label string) string {
	if pair, ok := idx.fp[label]; ok {
		return pair
	}
	return label
}

func leavesUnder(n, from *tree.Node) []*tree.Node {
	if n.Tip() {
		return []*tree.Node{n}
	}
	var ls []*tree.Node
	for _, c := range n.Neigh() {
		if c == from {
			continue
		}
		ls = append(ls, leavesUnder(c, n)...)
	}
	return ls
}

func fingerprint(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
