// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqid implements a command to calculate
// pairwise sequence identities between populations
// for the gene clusters of a project.
package seqid

import (
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
	"github.com/js-arias/popgen/population"
	"github.com/js-arias/popgen/popstat"
	"github.com/js-arias/popgen/project"
)

var Command = &command.Command{
	Usage: `seqid [--cpu <number>] [--keep-going]
	[--mothur <extension>]
	[--db] [--run <name>]
	<project-file>`,
	Short: "calculate between-population sequence identities",
	Long: `
Command seqid reads the gene cluster alignments of a PopGen project and, for
each cluster and each pair of populations, print the descriptive summary of
the pairwise sequence identities between the sequences of the two
populations. Pairs inside a population are never compared.

The argument of the command is the name of the project file.

The output is a tab-delimited table with the cluster, the two populations,
and the number, minimum, first quartile, mean, median, third quartile,
maximum, and standard deviation of the identity values.

By default, identities are calculated from the alignment, ignoring gap
sites. If the flag --mothur is set with a file extension, the identities
will be read instead from a pairwise distance file written by the dist.seqs
command of mothur, located next to each alignment with the indicated
extension, with the identity defined as one minus the distance.

By default all available CPUs will be used for the calculations. Use the
flag --cpu to set the number of CPUs. The output is independent of the
number of CPUs.

By default, the first failed cluster stops the run. If the flag --keep-going
is set, the values of a failed cluster will be reported as "NA" and the run
will continue with the next cluster.

If the flag --db is set, the summaries will also be stored in the SQLite
database of the project, under the run name given with the flag --run
("seqid" by default). If the project does not have a statistics database, a
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
var mothurExt string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().BoolVar(&keepGoing, "keep-going", false, "")
	c.Flags().BoolVar(&useDB, "db", false, "")
	c.Flags().StringVar(&runName, "run", "seqid", "")
	c.Flags().StringVar(&mothurExt, "mothur", "", "")
}

type pairStat struct {
	pop1, pop2 string
	stat       popstat.Statistic
	failed     bool
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Read(args[0])
	if err != nil {
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

	res, err := extool.RunPool(context.Background(), numCPU, cls, func(ctx context.Context, cl project.Cluster) ([]pairStat, error) {
		ps, err := clusterStats(cl, pd, pairs)
		if err != nil {
			if !keepGoing {
				return nil, fmt.Errorf("cluster %q: %v", cl.ID, err)
			}
			fmt.Fprintf(c.Stderr(), "warning: cluster %q: %v\n", cl.ID, err)
			ps = make([]pairStat, len(pairs))
			for i, pp := range pairs {
				ps[i] = pairStat{pop1: pp[0], pop2: pp[1], failed: true}
			}
		}
		return ps, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "cluster\tpop1\tpop2\tn\tmin\tq1\tmean\tmedian\tq3\tmax\tstdev\n")
	for i, cl := range cls {
		for _, ps := range res[i] {
			if ps.failed {
				fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\tNA\tNA\tNA\tNA\tNA\tNA\tNA\tNA\n", cl.ID, ps.pop1, ps.pop2)
				continue
			}
			s := ps.stat
			fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%s\n",
				cl.ID, ps.pop1, ps.pop2, s.N, s.Min, s.Q1, s.Mean, s.Median, s.Q3, s.Max, naFloat(s.StdDev))
		}
	}

	if !useDB {
		return nil
	}
	return store(p, cls, res)
}

func clusterStats(cl project.Cluster, pd *population.Data, pairs [][2]string) ([]pairStat, error) {
	var vals func(p1, p2 string) ([]float64, error)
	if mothurExt != "" {
		dist, err := readDists(distFile(cl.Path))
		if err != nil {
			return nil, err
		}
		vals = func(p1, p2 string) ([]float64, error) {
			return crossDists(dist, pd, p1, p2)
		}
	} else {
		a, err := readAlignment(cl.Path)
		if err != nil {
			return nil, err
		}
		vals = func(p1, p2 string) ([]float64, error) {
			return popstat.BetweenGroups(a, pd, p1, p2)
		}
	}

	ps := make([]pairStat, 0, len(pairs))
	for _, pp := range pairs {
		vs, err := vals(pp[0], pp[1])
		if err != nil {
			return nil, err
		}
		ps = append(ps, pairStat{
			pop1: pp[0],
			pop2: pp[1],
			stat: popstat.Describe(vs),
		})
	}
	return ps, nil
}

func crossDists(dist map[[2]string]float64, pd *population.Data, p1, p2 string) ([]float64, error) {
	m1 := pd.Members(p1)
	if len(m1) == 0 {
		return nil, fmt.Errorf("population %q: no assigned taxa", p1)
	}
	m2 := pd.Members(p2)
	if len(m2) == 0 {
		return nil, fmt.Errorf("population %q: no assigned taxa", p2)
	}

	vals := make([]float64, 0, len(m1)*len(m2))
	for _, t1 := range m1 {
		for _, t2 := range m2 {
			d, ok := dist[seqPair(t1, t2)]
			if !ok {
				return nil, fmt.Errorf("populations %q-%q: no distance for pair %q-%q", p1, p2, t1, t2)
			}
			vals = append(vals, 1-d)
		}
	}
	return vals, nil
}

func store(p *project.Project, cls []project.Cluster, res [][]pairStat) error {
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
		for _, ps := range res[i] {
			if ps.failed {
				continue
			}
			if err := db.AddSeqID(runName, cl.ID, ps.pop1, ps.pop2, ps.stat); err != nil {
				return err
			}
		}
	}

	p.Add(project.PopDB, dbFile)
	return p.Write()
}

func distFile(path string) string {
	ext := mothurExt
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func readDists(name string) (map[[2]string]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := popstat.ReadMothurDist(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	dist := make(map[[2]string]float64, len(ds))
	for _, d := range ds {
		dist[seqPair(d.Seq1, d.Seq2)] = d.Dist
	}
	return dist, nil
}

func seqPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
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

func naFloat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return fmt.Sprintf("%.6g", v)
}
