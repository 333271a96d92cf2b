// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package itep is a metapackage for commands
// that dealt with tables exported
// from an ITEP pangenome database.
package itep

import (
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/cmd/popgen/itep/gff"
	"github.com/js-arias/popgen/cmd/popgen/itep/itol"
)

var Command = &command.Command{
	Usage: "itep <command> [<argument>...]",
	Short: "commands for ITEP pangenome tables",
}

func init() {
	Command.Add(gff.Command)
	Command.Add(itol.Command)
}
