// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rdtl is a metapackage for commands
// that dealt with gene tree-species tree
// reconciliation results.
package rdtl

import (
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/cmd/popgen/rdtl/list"
	"github.com/js-arias/popgen/cmd/popgen/rdtl/load"
	"github.com/js-arias/popgen/cmd/popgen/rdtl/parse"
)

var Command = &command.Command{
	Usage: "rdtl <command> [<argument>...]",
	Short: "commands for reconciliation results",
}

func init() {
	Command.Add(list.Command)
	Command.Add(load.Command)
	Command.Add(parse.Command)
}
