// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package itol

import (
	"os"
	"reflect"
	"testing"

	"github.com/js-arias/popgen/project"
)

func TestInputFiles(t *testing.T) {
	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p := project.New()
	p.SetName(name)
	p.Add(project.GeneInfo, "geneinfo.tab")
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing project: %v", err)
	}

	projFile = name
	defer func() { projFile = "" }()

	g, err := inputFiles(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"geneinfo.tab"}; !reflect.DeepEqual(g, w) {
		t.Errorf("project default: got %v, want %v", g, w)
	}

	g, err = inputFiles([]string{"other.tab"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"other.tab"}; !reflect.DeepEqual(g, w) {
		t.Errorf("explicit files: got %v, want %v", g, w)
	}

	projFile = ""
	g, err = inputFiles(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"-"}; !reflect.DeepEqual(g, w) {
		t.Errorf("no project: got %v, want %v", g, w)
	}
}
