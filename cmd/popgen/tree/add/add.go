// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add species trees
// to a PopGen project.
package add

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/project"
	"github.com/js-arias/popgen/sptree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>] [--name <name>]
	<project-file> [<newick-file>...]`,
	Short: "add species trees to a PopGen project",
	Long: `
Command add reads one or more species trees in newick format, checks that
the trees can be used in a reconciliation analysis, and adds the trees to a
PopGen project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more newick files can be given as arguments, with one tree per line.
If no file is given the trees will be read from the standard input.

Species trees are undated; branch lengths, if present, are ignored. Every
internal node of a species tree must have a unique label, so each node can
be identified by a pair of its descendant terminals, as done by the rdtl
commands. A tree with unlabeled or repeated internal node labels will be
rejected; the usual cause is bootstrap values left on the internal nodes.

By default, a tree is named by the name of its file and, when a file has
several trees, the position of the tree in the file. Use the flag --name to
set a different name for the trees in the input files.

By default the trees will be stored in the tree file currently defined for
the project. If the project does not have a tree file, a new one will be
created with the name 'trees.tab'. A different tree file name can be defined
using the flag --file, or -f. If this flag is used, and there is a tree file
already defined, then a new file with that name will be created, and used as
the tree file for the project (previously defined trees will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&treeName, "name", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	var tc *sptree.Collection
	if tf := p.Path(project.Trees); tf != "" {
		tc, err = readTreeFile(tf)
		if err != nil {
			return fmt.Errorf("on project %q: %v", tf, err)
		}
	}
	if tc == nil {
		tc = sptree.NewCollection()
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for _, a := range args {
		if err := addTrees(tc, c.Stdin(), a); err != nil {
			return err
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}

	if err := writeTrees(tc); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable ot open project %q: %v", name, err)
	}
	return p, nil
}

// AddTrees reads the newick trees of a file,
// one tree per line,
// and adds them to a collection.
// Trees are named by the file name
// and the position of the tree in the file.
func addTrees(tc *sptree.Collection, r io.Reader, name string) error {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	base := treeName
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	num := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		t, err := newick.NewParser(strings.NewReader(line)).Parse()
		if err != nil {
			return fmt.Errorf("on file %q: line %d: %v", name, ln, err)
		}

		tn := base
		if num > 0 {
			tn = fmt.Sprintf("%s.%d", base, num)
		}
		if err := tc.Add(tn, t); err != nil {
			return fmt.Errorf("on file %q: line %d: %v", name, ln, err)
		}
		num++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if num == 0 {
		return fmt.Errorf("on file %q: no trees in input", name)
	}
	return nil
}

func readTreeFile(name string) (*sptree.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := sptree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

func writeTrees(tc *sptree.Collection) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
