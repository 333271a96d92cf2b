// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package itol implements a command to build
// an iTOL dataset
// from an ITEP gene information table.
package itol

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/geneinfo"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: `itol [--label <text>] [--color <value>]
	[-p|--project <project-file>] [-o|--output <file>]
	[<info-file>...]`,
	Short: "build an iTOL dataset from an ITEP gene table",
	Long: `
Command itol reads one or more gene information tables exported from an ITEP
pangenome database, counts the genes of each organism, and writes the counts
as a simple bar dataset for the iTOL tree viewer. The organism names must
match the terminal names of the tree uploaded to iTOL.

One or more table files can be given as arguments. If no file is given, and
a project is defined with the flag --project, or -p, the gene information
table defined in the project will be used; otherwise the table will be read
from the standard input.

Use the flag --label to set the label of the dataset ("genes" by default)
and the flag --color to set its color, as an hexadecimal RGB value
("#1f77b4" by default).

By default the dataset will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var label string
var colorVal string
var output string
var projFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&label, "label", "genes", "")
	c.Flags().StringVar(&colorVal, "color", "#1f77b4", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&projFile, "project", "", "")
	c.Flags().StringVar(&projFile, "p", "", "")
}

func run(c *command.Command, args []string) (err error) {
	args, err = inputFiles(args)
	if err != nil {
		return err
	}

	count := make(map[string]int)
	for _, a := range args {
		gs, err := readGenes(c.Stdin(), a)
		if err != nil {
			return err
		}
		for _, g := range gs {
			count[g.Organism]++
		}
	}
	if len(count) == 0 {
		return fmt.Errorf("no genes in input")
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		f, errOpen := os.Create(output)
		if errOpen != nil {
			return errOpen
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	orgs := make([]string, 0, len(count))
	for o := range count {
		orgs = append(orgs, o)
	}
	slices.Sort(orgs)

	fmt.Fprintf(w, "DATASET_SIMPLEBAR\n")
	fmt.Fprintf(w, "SEPARATOR TAB\n")
	fmt.Fprintf(w, "DATASET_LABEL\t%s\n", label)
	fmt.Fprintf(w, "COLOR\t%s\n", colorVal)
	fmt.Fprintf(w, "DATA\n")
	for _, o := range orgs {
		fmt.Fprintf(w, "%s\t%d\n", o, count[o])
	}
	return nil
}

func inputFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if projFile == "" {
		return []string{"-"}, nil
	}
	p, err := project.Read(projFile)
	if err != nil {
		return nil, err
	}
	gf := p.Path(project.GeneInfo)
	if gf == "" {
		return nil, fmt.Errorf("project %q: undefined gene information table", projFile)
	}
	return []string{gf}, nil
}

func readGenes(r io.Reader, name string) ([]geneinfo.Gene, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	gs, err := geneinfo.Read(r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return gs, nil
}
