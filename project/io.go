// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/popgen/population"
	"github.com/js-arias/popgen/sptree"
)

// A Cluster is a gene cluster
// with the path of its alignment file.
type Cluster struct {
	ID   string
	Path string
}

// Clusters reads the gene alignment list
// defined in a project.
//
// The list is a TSV file
// with the following fields:
//
//   - cluster, the gene cluster identifier
//   - path, the path of the alignment file
//
// Clusters are returned in the order
// of the file.
func (p *Project) Clusters() ([]Cluster, error) {
	name := p.Path(Alignments)
	if name == "" {
		return nil, fmt.Errorf("alignment list not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range []string{"cluster", "path"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	var cls []Cluster
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}
		cls = append(cls, Cluster{
			ID:   row[fields["cluster"]],
			Path: row[fields["path"]],
		})
	}
	return cls, nil
}

// Populations reads the population assignment file
// defined in a project.
func (p *Project) Populations() (*population.Data, error) {
	name := p.Path(Populations)
	if name == "" {
		return nil, fmt.Errorf("populations not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := population.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return d, nil
}

// Trees reads the species trees defined in a project.
func (p *Project) Trees() (*sptree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}
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
