// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dnds implements a command to calculate
// pairwise dN/dS estimates
// for the gene clusters of a project,
// using the yn00 program of PAML.
package dnds

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/align"
	"github.com/js-arias/popgen/extool"
	"github.com/js-arias/popgen/popgendb"
	"github.com/js-arias/popgen/popstat"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: `dnds [--cpu <number>] [--keep-going]
	[--prog <binary>]
	[--db] [--run <name>]
	<project-file>`,
	Short: "calculate pairwise dN/dS estimates with yn00",
	Long: `
Command dnds reads the gene cluster alignments of a PopGen project, runs the
yn00 program of the PAML package on each cluster, and print the pairwise
estimates of the Yang & Nielsen (2000) method as a tab-delimited table with
the cluster, the two sequences, the dN/dS ratio (omega), and the dN and dS
values.

The argument of the command is the name of the project file. The alignments
must be in-frame codon alignments.

For each cluster, a sequential phylip file and a yn00 control file are
created in a temporal directory; the temporal directory is removed after the
run. The yn00 binary must be in the PATH; use the flag --prog to set a
different binary name.

By default all available CPUs will be used, one cluster per CPU. Use the
flag --cpu to set the number of CPUs. The output is independent of the
number of CPUs.

By default, the first failed cluster stops the run. If the flag --keep-going
is set, a failed cluster will be reported as a single "NA" row and the run
will continue with the next cluster.

If the flag --db is set, the estimates will also be stored in the SQLite
database of the project, under the run name given with the flag --run
("dnds" by default). If the project does not have a statistics database, a
new one will be created with the name 'popgen.db'. A run name can only be
stored once.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numCPU int
var keepGoing bool
var useDB bool
var runName string
var progName string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().BoolVar(&keepGoing, "keep-going", false, "")
	c.Flags().BoolVar(&useDB, "db", false, "")
	c.Flags().StringVar(&runName, "run", "dnds", "")
	c.Flags().StringVar(&progName, "prog", "yn00", "")
}

type pairRate struct {
	seq1, seq2 string
	omega      float64
	dn, ds     float64
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	if err := extool.Look(progName); err != nil {
		return err
	}

	cls, err := p.Clusters()
	if err != nil {
		return err
	}

	res, err := extool.RunPool(context.Background(), numCPU, cls, func(ctx context.Context, cl project.Cluster) ([]pairRate, error) {
		prs, err := clusterRates(ctx, cl)
		if err != nil {
			if !keepGoing {
				return nil, fmt.Errorf("cluster %q: %v", cl.ID, err)
			}
			fmt.Fprintf(c.Stderr(), "warning: cluster %q: %v\n", cl.ID, err)
			return nil, nil
		}
		return prs, nil
	})
	if err != nil {
		return err
	}

	printRates(c.Stdout(), cls, res)

	if !useDB {
		return nil
	}
	return store(p, cls, res)
}

// PrintRates writes the result table.
// A failed cluster
// (a nil result under --keep-going)
// is reported as a single row of "NA" values,
// so the output keeps one shape
// across the popstat commands.
func printRates(w io.Writer, cls []project.Cluster, res [][]pairRate) {
	fmt.Fprintf(w, "cluster\tseq1\tseq2\tomega\tdn\tds\n")
	for i, cl := range cls {
		if res[i] == nil {
			fmt.Fprintf(w, "%s\tNA\tNA\tNA\tNA\tNA\n", cl.ID)
			continue
		}
		for _, pr := range res[i] {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.6g\t%.6g\t%.6g\n",
				cl.ID, pr.seq1, pr.seq2, pr.omega, pr.dn, pr.ds)
		}
	}
}

func clusterRates(ctx context.Context, cl project.Cluster) ([]pairRate, error) {
	a, err := readAlignment(cl.Path)
	if err != nil {
		return nil, err
	}
	if a.Len()%3 != 0 {
		return nil, fmt.Errorf("alignment with %d sites: not a codon alignment", a.Len())
	}

	dir, cleanup, err := extool.TempDir("popgen-dnds")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	names := a.Names()
	if err := writeInput(dir, a, names); err != nil {
		return nil, err
	}

	cmd := extool.Command{
		Prog: progName,
		Dir:  dir,
	}
	if _, _, err := cmd.Run(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, "yn"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prs, err := popstat.ReadYn00(f)
	if err != nil {
		return nil, err
	}

	rates := make([]pairRate, 0, len(prs))
	for _, pr := range prs {
		if pr.Seq1 < 1 || pr.Seq1 > len(names) || pr.Seq2 < 1 || pr.Seq2 > len(names) {
			return nil, fmt.Errorf("yn00 output: invalid sequence pair %d-%d", pr.Seq1, pr.Seq2)
		}
		rates = append(rates, pairRate{
			seq1:  names[pr.Seq1-1],
			seq2:  names[pr.Seq2-1],
			omega: pr.Omega,
			dn:    pr.DN,
			ds:    pr.DS,
		})
	}
	return rates, nil
}

// WriteInput writes the sequential phylip file
// and the yn00 control file.
// Sequence names are written by their position
// in the alignment,
// as yn00 truncates long names.
func writeInput(dir string, a *align.Alignment, names []string) (err error) {
	f, err := os.Create(filepath.Join(dir, "seqs.phy"))
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, " %d %d\n", len(names), a.Len())
	for i, n := range names {
		fmt.Fprintf(f, "seq%d  %s\n", i+1, strings.ToUpper(a.Sequence(n)))
	}

	return writeControl(dir)
}

func writeControl(dir string) (err error) {
	f, err := os.Create(filepath.Join(dir, "yn00.ctl"))
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, "seqfile = seqs.phy\n")
	fmt.Fprintf(f, "outfile = yn\n")
	fmt.Fprintf(f, "verbose = 0\n")
	fmt.Fprintf(f, "icode = 0\n")
	fmt.Fprintf(f, "weighting = 0\n")
	fmt.Fprintf(f, "commonf3x4 = 0\n")
	return nil
}

func store(p *project.Project, cls []project.Cluster, res [][]pairRate) error {
	dbFile := p.Path(project.PopDB)
	if dbFile == "" {
		dbFile = "popgen.db"
	}
	db, err := popgendb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	for i, cl := range cls {
		for _, pr := range res[i] {
			if err := db.AddDnDs(runName, cl.ID, pr.seq1, pr.seq2, pr.omega, pr.dn, pr.ds); err != nil {
				return err
			}
		}
	}

	p.Add(project.PopDB, dbFile)
	return p.Write()
}

func readAlignment(name string) (*align.Alignment, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var a *align.Alignment
	switch strings.ToLower(filepath.Ext(name)) {
	case ".nex", ".nexus", ".nxs":
		a, err = align.ReadNexus(f)
	default:
		a, err = align.ReadFasta(f)
	}
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return a, nil
}
