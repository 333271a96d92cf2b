// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PopGen is a tool for population genomics analysis
// of microbial genomes.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/popgen/cmd/popgen/itep"
	"github.com/js-arias/popgen/cmd/popgen/popstat"
	"github.com/js-arias/popgen/cmd/popgen/prj"
	"github.com/js-arias/popgen/cmd/popgen/rdtl"
	"github.com/js-arias/popgen/cmd/popgen/tree"
)

var app = &command.Command{
	Usage: "popgen <command> [<argument>...]",
	Short: "a tool for population genomics of microbial genomes",
}

func init() {
	app.Add(itep.Command)
	app.Add(popstat.Command)
	app.Add(prj.Command)
	app.Add(rdtl.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
