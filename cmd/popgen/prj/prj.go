// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a PopGen project and prints the information of the
different project elements into the standard output.

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

	if p.Path(project.Alignments) != "" {
		if err := printClusters(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.Populations) != "" {
		if err := printPopulations(c.Stdout(), p); err != nil {
			return err
		}
	}
	if rF := p.Path(project.Reconciliation); rF != "" {
		fmt.Fprintf(c.Stdout(), "Reconciliation report:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n\n", rF)
	}
	if p.Path(project.Trees) != "" {
		if err := printTrees(c.Stdout(), p); err != nil {
			return err
		}
	}
	for _, db := range []project.Dataset{project.PopDB, project.RecDB} {
		name := p.Path(db)
		if name == "" {
			continue
		}
		fmt.Fprintf(c.Stdout(), "Result database (%s):\n", db)
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", name)
		if _, err := os.Stat(name); err != nil {
			fmt.Fprintf(c.Stdout(), "\tnot yet created\n")
		}
		fmt.Fprintf(c.Stdout(), "\n")
	}

	return nil
}

func printClusters(w io.Writer, p *project.Project) error {
	cls, err := p.Clusters()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Gene alignments:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Alignments))
	fmt.Fprintf(w, "\tclusters: %d\n", len(cls))
	fmt.Fprintf(w, "\n")
	return nil
}

func printPopulations(w io.Writer, p *project.Project) error {
	d, err := p.Populations()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Populations:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Populations))
	fmt.Fprintf(w, "\tpopulations: %d\n", len(d.Pops()))
	fmt.Fprintf(w, "\ttaxa: %d\n", len(d.Taxa()))
	fmt.Fprintf(w, "\n")
	return nil
}

func printTrees(w io.Writer, p *project.Project) error {
	c, err := p.Trees()
	if err != nil {
		return err
	}

	terms := make(map[string]bool)
	for _, tn := range c.Names() {
		for _, tax := range c.Terms(tn) {
			terms[tax] = true
		}
	}

	fmt.Fprintf(w, "Species trees:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Trees))
	fmt.Fprintf(w, "\ttrees: %d\n", len(c.Names()))
	fmt.Fprintf(w, "\tterminals: %d\n", len(terms))
	fmt.Fprintf(w, "\n")
	return nil
}
