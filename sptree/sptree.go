// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sptree provides a collection of named species trees
// for gene tree-species tree reconciliations.
//
// The trees are undated newick trees
// in which every internal node carries a unique label,
// so each node can be identified
// by a pair of its descendant terminals.
// Trees that do not meet that condition
// are rejected when added to a collection.
package sptree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/popgen/recon"
)

// A Collection is a set of named species trees.
type Collection struct {
	names []string
	trees map[string]*tree.Tree
}

// NewCollection creates a new empty collection.
func NewCollection() *Collection {
	return &Collection{
		trees: make(map[string]*tree.Tree),
	}
}

// Add adds a named species tree to a collection.
//
// The tree must be usable in a reconciliation:
// every internal node must have a unique label
// that resolves to a pair of terminals.
// An invalid tree is an error,
// the usual cause being bootstrap values
// left on the internal nodes.
func (c *Collection) Add(name string, t *tree.Tree) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return fmt.Errorf("tree without name")
	}
	if _, dup := c.trees[name]; dup {
		return fmt.Errorf("tree %q: repeated name", name)
	}
	if _, err := recon.NewSpeciesIndex(t); err != nil {
		return fmt.Errorf("tree %q: %v", name, err)
	}

	c.names = append(c.names, name)
	c.trees[name] = t
	return nil
}

// Names returns the tree names,
// in the order in which they were added.
func (c *Collection) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Tree returns the tree of the given name,
// or nil if the name is not in the collection.
func (c *Collection) Tree(name string) *tree.Tree {
	return c.trees[strings.Join(strings.Fields(name), " ")]
}

// Terms returns the sorted terminal names
// of the tree of the given name.
func (c *Collection) Terms(name string) []string {
	t := c.Tree(name)
	if t == nil {
		return nil
	}

	terms := make([]string, 0, len(t.Tips()))
	for _, tip := range t.Tips() {
		terms = append(terms, tip.Name())
	}
	slices.Sort(terms)
	return terms
}
