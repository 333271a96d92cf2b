// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the runs stored in the reconciliation database
// of a popgen project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
	"github.com/js-arias/popgen/rdtldb"
)

var Command = &command.Command{
	Usage: "list [--run <name>] <project-file>",
	Short: "print stored reconciliation runs",
	Long: `
Command list reads the reconciliation database of a PopGen project and print
the stored run names in the standard output.

The argument of the command is the name of the project file.

If the flag --run is set, instead of the run names, the per-tree cost
summaries of the indicated run will be printed.
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
		return fmt.Errorf("project %q: undefined results database", args[0])
	}
	db, err := rdtldb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	if runName != "" {
		sum, err := db.Summaries(runName)
		if err != nil {
			return err
		}
		for _, s := range sum {
			fmt.Fprintf(c.Stdout(), "%d\t%.2f\t%d\t%d\t%d\n", s.TreeID, s.Cost, s.Duplications, s.Transfers, s.Losses)
		}
		return nil
	}

	runs, err := db.Runs()
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(c.Stdout(), "%s\n", r)
	}
	return nil
}
