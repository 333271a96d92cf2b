// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of species trees in a popgen project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: "list <project-file>",
	Short: "print a list of the species trees in a project",
	Long: `
Command list reads the species trees from a PopGen project and print the
name of each tree, with its number of terminals, in the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
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

	for _, tn := range tc.Names() {
		fmt.Fprintf(c.Stdout(), "%s\t%d\n", tn, len(tc.Terms(tn)))
	}
	return nil
}
