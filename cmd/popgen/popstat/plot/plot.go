// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to plot
// the histogram of a column
// of a statistics table,
// or of the values stored
// in the statistics database of a project.
package plot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/popgen/popgendb"
	"github.com/js-arias/popgen/project"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot [--column <name>]
	[--db <project-file>] [--run <name>]
	[--bins <number>] [--skip-na]
	[-o|--output <png-file>]
	[<table-file>]`,
	Short: "plot the histogram of a result column",
	Long: `
Command plot reads a tab-delimited table, as written by the popstat
commands, and plots the histogram of a numeric column as a PNG image.

A table file can be given as an argument. If no file is given the table will
be read from the standard input.

When reading a table, the flag --column is required and sets the name of the
column to be plotted. Values of "NA" are an error; use the flag --skip-na to
ignore them.

Instead of a table, the values can be read from the statistics database of a
project. Use the flag --db with the name of the project file, and the flag
--run with the name of a stored Fst run ("fst" by default); the histogram
will be made with the Fst values of that run.

By default the histogram will have 20 bins; use the flag --bins to set a
different number. By default the image will be written to the file
'histogram.png'; use the flag --output, or -o, to set a different file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colName string
var dbProject string
var runName string
var numBins int
var skipNA bool
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&colName, "column", "", "")
	c.Flags().StringVar(&dbProject, "db", "", "")
	c.Flags().StringVar(&runName, "run", "fst", "")
	c.Flags().IntVar(&numBins, "bins", 20, "")
	c.Flags().BoolVar(&skipNA, "skip-na", false, "")
	c.Flags().StringVar(&output, "output", "histogram.png", "")
	c.Flags().StringVar(&output, "o", "histogram.png", "")
}

func run(c *command.Command, args []string) error {
	var vs []float64
	switch {
	case dbProject != "":
		var err error
		vs, err = readDB()
		if err != nil {
			return err
		}
		if colName == "" {
			colName = "fst"
		}
	default:
		if colName == "" {
			return c.UsageError("flag --column undefined")
		}
		name := "-"
		if len(args) > 0 {
			name = args[0]
		}
		var err error
		vs, err = readColumn(c.Stdin(), name)
		if err != nil {
			return err
		}
	}
	if len(vs) == 0 {
		return fmt.Errorf("column %q: no values to plot", colName)
	}

	p := plot.New()
	p.X.Label.Text = colName
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(vs), numBins)
	if err != nil {
		return fmt.Errorf("column %q: %v", colName, err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, output); err != nil {
		return err
	}
	return nil
}

func readDB() ([]float64, error) {
	p, err := project.Read(dbProject)
	if err != nil {
		return nil, err
	}
	dbFile := p.Path(project.PopDB)
	if dbFile == "" {
		return nil, fmt.Errorf("project %q: undefined statistics database", dbProject)
	}

	db, err := popgendb.Open(dbFile)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	vs, err := db.FstValues(runName)
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, fmt.Errorf("run %q: no values stored", runName)
	}
	return vs, nil
}

func readColumn(r io.Reader, name string) ([]float64, error) {
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

	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	col := -1
	for i, h := range head {
		if strings.EqualFold(h, colName) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("on file %q: expecting field %q", name, colName)
	}

	var vs []float64
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}
		s := strings.TrimSpace(row[col])
		if s == "NA" {
			if skipNA {
				continue
			}
			return nil, fmt.Errorf("on file %q: on row %d: value is NA", name, ln)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}
		vs = append(vs, v)
	}
	return vs, nil
}
