// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fst implements a command to calculate
// pairwise Fst values between populations
// for the gene clusters of a project,
// using the arlecore program.
package fst

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/align"
	"github.com/js-arias/popgen/extool"
	"github.com/js-arias/popgen/popgendb"
	"github.com/js-arias/popgen/population"
	"github.com/js-arias/popgen/popstat"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: `fst [--cpu <number>] [--keep-going]
	[--prog <binary>]
	[--db] [--run <name>]
	<project-file>`,
	Short: "calculate pairwise Fst values with arlecore",
	Long: `
Command fst reads the gene cluster alignments of a PopGen project, runs the
arlecore program of the Arlequin package on each cluster, and print the
matrix of pairwise Fst values between populations as a tab-delimited table
with the cluster, the two populations, and the Fst value.

The argument of the command is the name of the project file.

For each cluster, an Arlequin project file is created in a temporal
directory, with one sample per population and the aligned sequences as DNA
haplotypes; the temporal directory is removed after the run. The arlecore
binary must be in the PATH; use the flag --prog to set a different binary
name.

By default all available CPUs will be used, one cluster per CPU. Use the
flag --cpu to set the number of CPUs. The output is independent of the
number of CPUs.

By default, the first failed cluster stops the run. If the flag --keep-going
is set, the values of a failed cluster will be reported as "NA" and the run
will continue with the next cluster.

If the flag --db is set, the values will also be stored in the SQLite
database of the project, under the run name given with the flag --run ("fst"
by default). If the project does not have a statistics database, a new one
will be created with the name 'popgen.db'. A run name can only be stored
once.
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
	c.Flags().StringVar(&runName, "run", "fst", "")
	c.Flags().StringVar(&progName, "prog", "arlecore", "")
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
	pd, err := p.Populations()
	if err != nil {
		return err
	}
	pairs := pd.Pairs()
	if len(pairs) == 0 {
		return fmt.Errorf("project %q: less than two populations defined", args[0])
	}

	res, err := extool.RunPool(context.Background(), numCPU, cls, func(ctx context.Context, cl project.Cluster) (map[[2]string]float64, error) {
		fst, err := clusterFst(ctx, cl, pd)
		if err != nil {
			if !keepGoing {
				return nil, fmt.Errorf("cluster %q: %v", cl.ID, err)
			}
			fmt.Fprintf(c.Stderr(), "warning: cluster %q: %v\n", cl.ID, err)
			return nil, nil
		}
		return fst, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "cluster\tpop1\tpop2\tfst\n")
	for i, cl := range cls {
		for _, pp := range pairs {
			if res[i] == nil {
				fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\tNA\n", cl.ID, pp[0], pp[1])
				continue
			}
			fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\t%.6g\n", cl.ID, pp[0], pp[1], res[i][pp])
		}
	}

	if !useDB {
		return nil
	}
	return store(p, cls, pairs, res)
}

func clusterFst(ctx context.Context, cl project.Cluster, pd *population.Data) (map[[2]string]float64, error) {
	a, err := readAlignment(cl.Path)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := extool.TempDir("popgen-fst")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pops := pd.Pops()
	if err := writeArlequin(dir, a, pd, pops); err != nil {
		return nil, err
	}

	cmd := extool.Command{
		Prog: progName,
		Args: []string{"cluster.arp", "cluster.ars", "run_silent"},
		Dir:  dir,
	}
	if _, _, err := cmd.Run(ctx); err != nil {
		return nil, err
	}

	rf := filepath.Join(dir, "cluster.res", "cluster.htm")
	f, err := os.Open(rf)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fst, err := popstat.ReadArlequinFst(f, pops)
	if err != nil {
		return nil, fmt.Errorf("on result of cluster %q: %v", cl.ID, err)
	}
	return fst, nil
}

// WriteArlequin writes the Arlequin project file
// and the calculation settings file
// for a single cluster run.
// Each population is a sample,
// and each sequence a haplotype with frequency one.
func writeArlequin(dir string, a *align.Alignment, pd *population.Data, pops []string) (err error) {
	f, err := os.Create(filepath.Join(dir, "cluster.arp"))
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, "[Profile]\n")
	fmt.Fprintf(f, "\tTitle=\"popgen fst\"\n")
	fmt.Fprintf(f, "\tNbSamples=%d\n", len(pops))
	fmt.Fprintf(f, "\tDataType=DNA\n")
	fmt.Fprintf(f, "\tGenotypicData=0\n")
	fmt.Fprintf(f, "\tLocusSeparator=NONE\n")
	fmt.Fprintf(f, "\n[Data]\n")
	fmt.Fprintf(f, "\t[[Samples]]\n")
	for _, pop := range pops {
		members := pd.Members(pop)
		var seqs []string
		for _, tx := range members {
			s := a.Sequence(tx)
			if s == "" {
				return fmt.Errorf("taxon %q of population %q: not in alignment", tx, pop)
			}
			seqs = append(seqs, s)
		}
		if len(seqs) == 0 {
			return fmt.Errorf("population %q: no sequences in alignment", pop)
		}
		fmt.Fprintf(f, "\t\tSampleName=%q\n", pop)
		fmt.Fprintf(f, "\t\tSampleSize=%d\n", len(seqs))
		fmt.Fprintf(f, "\t\tSampleData= {\n")
		for i, tx := range members {
			id := strings.Join(strings.Fields(tx), "_")
			fmt.Fprintf(f, "\t\t\t%s 1 %s\n", id, strings.ToUpper(seqs[i]))
		}
		fmt.Fprintf(f, "\t\t}\n")
	}

	return writeSettings(dir)
}

func writeSettings(dir string) (err error) {
	f, err := os.Create(filepath.Join(dir, "cluster.ars"))
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, "[Setting for Calculations]\n")
	fmt.Fprintf(f, "PopPairwiseFST=1\n")
	fmt.Fprintf(f, "PopPairFstNumPermut=100\n")
	fmt.Fprintf(f, "DistanceMethod=0\n")
	fmt.Fprintf(f, "GammaAValue=0\n")
	fmt.Fprintf(f, "AllowedLevelOfMissingData=0.05\n")
	return nil
}

func store(p *project.Project, cls []project.Cluster, pairs [][2]string, res []map[[2]string]float64) error {
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
		if res[i] == nil {
			continue
		}
		for _, pp := range pairs {
			if err := db.AddFst(runName, cl.ID, pp[0], pp[1], res[i][pp]); err != nil {
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
