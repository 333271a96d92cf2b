// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package extool_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/popgen/extool"
)

func TestRun(t *testing.T) {
	if err := extool.Look("echo"); err != nil {
		t.Skipf("echo not available: %v", err)
	}

	c := extool.Command{
		Prog: "echo",
		Args: []string{"hello", "popgen"},
	}
	out, _, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("unable to run command: %v", err)
	}
	if g := strings.TrimSpace(string(out)); g != "hello popgen" {
		t.Errorf("stdout: got %q, want %q", g, "hello popgen")
	}
}

func TestRunError(t *testing.T) {
	c := extool.Command{Prog: "a-program-that-does-not-exist"}
	if _, _, err := c.Run(context.Background()); err == nil {
		t.Errorf("unknown program: expecting error")
	}

	if err := extool.Look("a-program-that-does-not-exist"); err == nil {
		t.Errorf("look for unknown program: expecting error")
	}
}

func TestTempDir(t *testing.T) {
	dir, done, err := extool.TempDir("popgen-test-")
	if err != nil {
		t.Fatalf("unable to create temp dir: %v", err)
	}

	name := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
		t.Fatalf("unable to write on temp dir: %v", err)
	}

	done()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("temp dir %q: should be removed", dir)
	}
}

func TestRunPool(t *testing.T) {
	tasks := []int{1, 2, 3, 4, 5, 6, 7, 8}
	fn := func(_ context.Context, x int) (int, error) {
		return x * x, nil
	}

	want, err := extool.RunPool(context.Background(), 1, tasks, fn)
	if err != nil {
		t.Fatalf("unable to run pool: %v", err)
	}

	// the number of workers must not change
	// the merged results
	for _, cpu := range []int{2, 4, 0} {
		got, err := extool.RunPool(context.Background(), cpu, tasks, fn)
		if err != nil {
			t.Fatalf("cpu %d: unable to run pool: %v", cpu, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("cpu %d: got %v, want %v", cpu, got, want)
		}
	}
}

func TestRunPoolError(t *testing.T) {
	tasks := []int{1, 2, 3, 4}
	fn := func(_ context.Context, x int) (int, error) {
		if x == 3 {
			return 0, fmt.Errorf("bad input")
		}
		return x, nil
	}

	if _, err := extool.RunPool(context.Background(), 2, tasks, fn); err == nil {
		t.Errorf("failing task: expecting error")
	}
}
