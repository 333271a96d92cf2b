// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gff implements a command to convert
// an ITEP gene information table
// into a GFF annotation file.
package gff

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/geneinfo"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: `gff [-p|--project <project-file>]
	[--organism <name>]
	[-o|--output <gff-file>]
	[<info-file>...]`,
	Short: "convert an ITEP gene table into a GFF file",
	Long: `
Command gff reads one or more gene information tables exported from an ITEP
pangenome database and writes the genes as CDS features of a GFF file.

One or more table files can be given as arguments. If no file is given, and
a PopGen project is indicated with the flag --project, or -p, the gene
information table defined in the project will be read; otherwise the table
will be read from the standard input.

If the flag --organism is set, only the genes of the indicated organism will
be written.

By default the features will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var organism string
var output string
var projFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&organism, "organism", "", "")
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

	var genes []geneinfo.Gene
	for _, a := range args {
		gs, err := readGenes(c.Stdin(), a)
		if err != nil {
			return err
		}
		genes = append(genes, gs...)
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

	gw := gff.NewWriter(w, 60, true)
	for _, g := range genes {
		if organism != "" && g.Organism != organism {
			continue
		}
		if _, err := gw.Write(g.Feature()); err != nil {
			return fmt.Errorf("gene %q: %v", g.ID, err)
		}
	}
	return nil
}

// InputFiles returns the input file list,
// defaulting to the gene information table
// defined in the project given with the --project flag,
// or the standard input.
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
