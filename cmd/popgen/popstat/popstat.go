// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package popstat is a metapackage for commands
// that calculate population statistics
// over the gene clusters of a project.
package popstat

import (
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/cmd/popgen/popstat/dnds"
	"github.com/js-arias/popgen/cmd/popgen/popstat/fst"
	"github.com/js-arias/popgen/cmd/popgen/popstat/phi"
	"github.com/js-arias/popgen/cmd/popgen/popstat/plot"
	"github.com/js-arias/popgen/cmd/popgen/popstat/seqid"
)

var Command = &command.Command{
	Usage: "popstat <command> [<argument>...]",
	Short: "commands for population statistics",
}

func init() {
	Command.Add(dnds.Command)
	Command.Add(fst.Command)
	Command.Add(phi.Command)
	Command.Add(plot.Command)
	Command.Add(seqid.Command)
}
