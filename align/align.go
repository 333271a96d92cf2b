// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align provides a multiple sequence alignment
// with the narrow set of operations
// used by popgen commands.
package align

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/evolbioinfo/goalign/io/nexus"
)

// An Alignment is a collection of aligned sequences,
// all of the same length,
// indexed by sequence name.
type Alignment struct {
	names []string
	seqs  map[string]string
}

// New creates a new empty alignment.
func New() *Alignment {
	return &Alignment{
		seqs: make(map[string]string),
	}
}

// ReadFasta reads an alignment
// from an aligned FASTA file.
func ReadFasta(r io.Reader) (*Alignment, error) {
	a := New()

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if err := a.Add(s.Name(), s.Seq.String()); err != nil {
			return nil, err
		}
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("while reading fasta: %v", err)
	}
	if len(a.names) == 0 {
		return nil, fmt.Errorf("while reading fasta: %v", io.ErrUnexpectedEOF)
	}
	return a, nil
}

// ReadNexus reads an alignment
// from a NEXUS file.
func ReadNexus(r io.Reader) (*Alignment, error) {
	nx, err := nexus.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("while reading nexus: %v", err)
	}

	a := New()
	nx.Iterate(func(name, sequence string) bool {
		if err = a.Add(name, sequence); err != nil {
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if len(a.names) == 0 {
		return nil, fmt.Errorf("while reading nexus: %v", io.ErrUnexpectedEOF)
	}
	return a, nil
}

// Add adds a named sequence to an alignment.
// All sequences of an alignment must have the same length.
func (a *Alignment) Add(name, seq string) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return fmt.Errorf("sequence without name")
	}
	if _, dup := a.seqs[name]; dup {
		return fmt.Errorf("sequence %q: repeated name", name)
	}
	seq = strings.ToLower(strings.TrimSpace(seq))
	if seq == "" {
		return fmt.Errorf("sequence %q: empty sequence", name)
	}
	if len(a.names) > 0 {
		if l := len(a.seqs[a.names[0]]); len(seq) != l {
			return fmt.Errorf("sequence %q: got %d sites, want %d", name, len(seq), l)
		}
	}

	a.names = append(a.names, name)
	a.seqs[name] = seq
	return nil
}

// Len returns the number of sites
// (i.e., columns)
// of the alignment.
func (a *Alignment) Len() int {
	if len(a.names) == 0 {
		return 0
	}
	return len(a.seqs[a.names[0]])
}

// Names returns the sequence names,
// in the order in which they were added.
func (a *Alignment) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Sequence returns the sequence
// of the given name,
// or an empty string if the name is not
// in the alignment.
func (a *Alignment) Sequence(name string) string {
	return a.seqs[strings.Join(strings.Fields(name), " ")]
}

// PairwiseIdentity returns the fraction
// of identical sites between two sequences,
// counted over the sites in which both sequences
// have a residue
// (i.e., gap sites are ignored).
// An alignment pair without comparable sites
// has an identity of zero.
func (a *Alignment) PairwiseIdentity(n1, n2 string) (float64, error) {
	s1 := a.Sequence(n1)
	if s1 == "" {
		return 0, fmt.Errorf("sequence %q: not in alignment", n1)
	}
	s2 := a.Sequence(n2)
	if s2 == "" {
		return 0, fmt.Errorf("sequence %q: not in alignment", n2)
	}

	var sites, eq int
	for i := range s1 {
		if isGap(s1[i]) || isGap(s2[i]) {
			continue
		}
		sites++
		if s1[i] == s2[i] {
			eq++
		}
	}
	if sites == 0 {
		return 0, nil
	}
	return float64(eq) / float64(sites), nil
}

// Slice returns a new alignment
// with the sites of the [start, end) column range.
func (a *Alignment) Slice(start, end int) (*Alignment, error) {
	if start < 0 || end > a.Len() || start >= end {
		return nil, fmt.Errorf("invalid site range [%d, %d): alignment has %d sites", start, end, a.Len())
	}

	na := New()
	for _, n := range a.names {
		if err := na.Add(n, a.seqs[n][start:end]); err != nil {
			return nil, err
		}
	}
	return na, nil
}

func isGap(c byte) bool {
	return c == '-' || c == '.'
}
