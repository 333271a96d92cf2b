// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package parse implements a command to parse
// the raw output of a reconciliation program
// into tab-delimited tables.
package parse

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
	"github.com/js-arias/popgen/recon"
)

var Command = &command.Command{
	Usage: `parse [-p|--project <project-file>]
	[--events <file>] [--summary <file>]
	[<output-file>...]`,
	Short: "parse reconciliation output into tables",
	Long: `
Command parse reads one or more raw output files of a gene tree-species tree
reconciliation program, in the format used by Ranger-DTL, and writes the
per-node events as a tab-delimited table.

One or more output files can be given as arguments. If no file is given, and
a PopGen project is indicated with the flag --project, or -p, the
reconciliation report defined in the project will be read; otherwise the
input will be read from the standard input.

The species tree embedded in the output must have a label on every internal
node. Each internal node is reported using the fingerprint of a pair of
terminals, so events from runs made with different node numberings can be
compared directly.

By default the event table will be printed in the standard output. Use the
flag --events to define an output file for the event table. Use the flag
--summary to define an output file for the per-tree table of reconciliation
costs and event counts; without the flag the summary table is not written.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var eventsFile string
var summaryFile string
var projFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&eventsFile, "events", "", "")
	c.Flags().StringVar(&summaryFile, "summary", "", "")
	c.Flags().StringVar(&projFile, "project", "", "")
	c.Flags().StringVar(&projFile, "p", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		args = append(args, "-")
		if projFile != "" {
			p, err := project.Read(projFile)
			if err != nil {
				return err
			}
			rf := p.Path(project.Reconciliation)
			if rf == "" {
				return fmt.Errorf("project %q: undefined reconciliation report", projFile)
			}
			args[0] = rf
		}
	}

	merged := &recon.Report{}
	for _, a := range args {
		rp, err := readReport(c.Stdin(), a)
		if err != nil {
			return err
		}
		if merged.Index == nil {
			merged.Index = rp.Index
		}
		merged.Events = append(merged.Events, rp.Events...)
		merged.Summaries = append(merged.Summaries, rp.Summaries...)
	}

	if err := writeEvents(c.Stdout(), merged); err != nil {
		return err
	}
	if summaryFile != "" {
		if err := writeSummary(merged); err != nil {
			return err
		}
	}
	return nil
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

func writeEvents(w io.Writer, rp *recon.Report) (err error) {
	if eventsFile != "" {
		f, errOpen := os.Create(eventsFile)
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

	if err := rp.EventsTSV(w); err != nil {
		return fmt.Errorf("while writing events: %v", err)
	}
	return nil
}

func writeSummary(rp *recon.Report) (err error) {
	f, err := os.Create(summaryFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := rp.SummaryTSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", summaryFile, err)
	}
	return nil
}
