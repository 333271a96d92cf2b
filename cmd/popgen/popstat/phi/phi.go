// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phi implements a command to run
// the Phi recombination test
// on the gene clusters of a project,
// using the Phi program of the PhiPack package.
package phi

import (
	"bytes"
	"context"
	"fmt"
	"math"
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
	Usage: `phi [--cpu <number>] [--keep-going]
	[--prog <binary>]
	[--db] [--run <name>]
	<project-file>`,
	Short: "run the Phi recombination test",
	Long: `
Command phi reads the gene cluster alignments of a PopGen project, runs the
Phi program of the PhiPack package on each cluster, and print the p-value of
the Phi recombination test as a tab-delimited table with the cluster and the
p-value.

The argument of the command is the name of the project file.

For each cluster, an aligned fasta file is created in a temporal directory;
the temporal directory is removed after the run. The Phi binary must be in
the PATH; use the flag --prog to set a different binary name.

When Phi can not calculate the statistic (for example, with too few
informative sites), the p-value will be reported as "NA".

By default all available CPUs will be used, one cluster per CPU. Use the
flag --cpu to set the number of CPUs. The output is independent of the
number of CPUs.

By default, the first failed cluster stops the run. If the flag --keep-going
is set, the p-value of a failed cluster will be reported as "NA" and the run
will continue with the next cluster.

If the flag --db is set, the p-values will also be stored in the SQLite
database of the project, under the run name given with the flag --run ("phi"
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
	c.Flags().StringVar(&runName, "run", "phi", "")
	c.Flags().StringVar(&progName, "prog", "Phi", "")
}

type phiValue struct {
	p      float64
	failed bool
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

	res, err := extool.RunPool(context.Background(), numCPU, cls, func(ctx context.Context, cl project.Cluster) (phiValue, error) {
		pv, err := clusterPhi(ctx, cl)
		if err != nil {
			if !keepGoing {
				return phiValue{}, fmt.Errorf("cluster %q: %v", cl.ID, err)
			}
			fmt.Fprintf(c.Stderr(), "warning: cluster %q: %v\n", cl.ID, err)
			return phiValue{failed: true}, nil
		}
		return phiValue{p: pv}, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "cluster\tpvalue\n")
	for i, cl := range cls {
		if res[i].failed || math.IsNaN(res[i].p) {
			fmt.Fprintf(c.Stdout(), "%s\tNA\n", cl.ID)
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\t%.6g\n", cl.ID, res[i].p)
	}

	if !useDB {
		return nil
	}
	return store(p, cls, res)
}

func clusterPhi(ctx context.Context, cl project.Cluster) (float64, error) {
	a, err := readAlignment(cl.Path)
	if err != nil {
		return 0, err
	}

	dir, cleanup, err := extool.TempDir("popgen-phi")
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := writeFasta(dir, a); err != nil {
		return 0, err
	}

	cmd := extool.Command{
		Prog: progName,
		Args: []string{"-f", "seqs.fas"},
		Dir:  dir,
	}
	stdout, _, err := cmd.Run(ctx)
	if err != nil {
		return 0, err
	}

	pv, err := popstat.ReadPhi(bytes.NewReader(stdout))
	if err != nil {
		return 0, err
	}
	return pv, nil
}

func writeFasta(dir string, a *align.Alignment) (err error) {
	f, err := os.Create(filepath.Join(dir, "seqs.fas"))
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	for _, n := range a.Names() {
		id := strings.Join(strings.Fields(n), "_")
		fmt.Fprintf(f, ">%s\n%s\n", id, strings.ToUpper(a.Sequence(n)))
	}
	return nil
}

func store(p *project.Project, cls []project.Cluster, res []phiValue) error {
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
		if res[i].failed {
			continue
		}
		if err := db.AddPhi(runName, cl.ID, res[i].p); err != nil {
			return err
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
