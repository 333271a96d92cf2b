// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package extool runs external analysis programs.
//
// Programs are always invoked with a structured
// argument list,
// never through a shell,
// and with their output captured,
// so a failed run can be reported
// with the diagnostic text of the program.
package extool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// A Command is the invocation
// of an external program.
type Command struct {
	// Prog is the name of the program binary.
	Prog string

	// Args is the argument list,
	// without the program name.
	Args []string

	// Dir is the working directory of the program.
	// If empty,
	// the program runs in the current directory.
	Dir string

	// Stdin is the standard input of the program.
	Stdin io.Reader
}

// Run invokes the program
// and waits for it to finish,
// returning its captured standard output
// and standard error.
// If the program can not run,
// or exits with a non-zero status,
// the error includes the tail
// of the standard error text.
func (c Command) Run(ctx context.Context) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, c.Prog, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return out.Bytes(), errOut.Bytes(), fmt.Errorf("%s: %v%s", c.Prog, err, errTail(errOut.Bytes()))
	}
	return out.Bytes(), errOut.Bytes(), nil
}

// Look reports whether the program
// can be found in the system.
func Look(prog string) error {
	if _, err := exec.LookPath(prog); err != nil {
		return fmt.Errorf("program %q: %v", prog, err)
	}
	return nil
}

// TempDir creates a temporal working directory
// for a run of an external program,
// returning the directory name
// and the function that removes it.
func TempDir(pattern string) (string, func(), error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

func errTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return ": " + strings.Join(lines, "; ")
}
