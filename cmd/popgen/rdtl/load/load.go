// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package load implements a command to store
// parsed reconciliation results
// in the project results database.
package load

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
	"github.com/js-arias/popgen/rdtldb"
	"github.com/js-arias/popgen/recon"
)

var Command = &command.Command{
	Usage: `load [--run <name>]
	<project-file> [<output-file>...]`,
	Short: "load reconciliation results into a database",
	Long: `
Command load reads one or more raw output files of a gene tree-species tree
reconciliation program, in the format used by Ranger-DTL, and stores the
parsed events and the per-tree cost summaries in the SQLite database of the
project.

The first argument of the command is the name of the project file.

One or more output files can be given as arguments. If no file is given, the
reconciliation report defined in the project will be read; if the project
does not define a report, the input will be read from the standard input.

Each stored result is identified by a run name. By default the run name is
the name of the input file, without its extension. Use the flag --run to set
an explicit run name; with several input files the file index will be added
to the given name. A run name can only be stored once.

If the project does not have a results database, a new one will be created
with the name 'rdtl.db'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var runName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&runName, "run", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	dbFile := p.Path(project.RecDB)
	if dbFile == "" {
		dbFile = "rdtl.db"
	}
	db, err := rdtldb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	args = inputFiles(p, args[1:])
	for i, a := range args {
		rp, err := readReport(c.Stdin(), a)
		if err != nil {
			return err
		}
		rn := nameRun(a, i, len(args))
		if err := db.AddReport(rn, a, rp); err != nil {
			return err
		}
	}

	p.Add(project.RecDB, dbFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

// InputFiles returns the input file list,
// defaulting to the reconciliation report
// defined in the project,
// or the standard input.
func inputFiles(p *project.Project, args []string) []string {
	if len(args) > 0 {
		return args
	}
	if rf := p.Path(project.Reconciliation); rf != "" {
		return []string{rf}
	}
	return []string{"-"}
}

func nameRun(file string, i, num int) string {
	rn := runName
	if rn == "" {
		if file == "-" {
			file = "stdin"
		}
		base := filepath.Base(file)
		rn = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if num > 1 && runName != "" {
		rn = fmt.Sprintf("%s.%d", rn, i)
	}
	return rn
}

func readReport(r io.Reader, name string) (*recon.Report, error) {
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

	rp, err := recon.ReadReport(r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return rp, nil
}
