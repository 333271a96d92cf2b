// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package load

import (
	"reflect"
	"testing"

	"github.com/js-arias/popgen/project"
)

func TestInputFiles(t *testing.T) {
	p := project.New()
	p.Add(project.Reconciliation, "ranger-out.txt")

	if g, w := inputFiles(p, nil), []string{"ranger-out.txt"}; !reflect.DeepEqual(g, w) {
		t.Errorf("project default: got %v, want %v", g, w)
	}
	if g, w := inputFiles(p, []string{"other.txt"}), []string{"other.txt"}; !reflect.DeepEqual(g, w) {
		t.Errorf("explicit files: got %v, want %v", g, w)
	}

	empty := project.New()
	if g, w := inputFiles(empty, nil), []string{"-"}; !reflect.DeepEqual(g, w) {
		t.Errorf("empty project: got %v, want %v", g, w)
	}
}
