// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the terminals of the species trees of a PopGen project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] <project-file>",
	Short: "print a list of species tree terminals",
	Long: `
Command terms reads the species trees from a PopGen project and print the
name of the terminals in the standard output. The terminal names are the
ones that must be used in the population assignment file of the project.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only
the terminals of the indicated tree will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}

	ls := tc.Names()
	if treeName != "" {
		if tc.Tree(treeName) == nil {
			return fmt.Errorf("tree %q: not in project %q", treeName, args[0])
		}
		ls = []string{treeName}
	}

	terms := make(map[string]bool)
	for _, tn := range ls {
		for _, tax := range tc.Terms(tn) {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	for _, term := range termList {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}
