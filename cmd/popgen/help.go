// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(populationFilesGuide)
	app.Add(projectsGuide)
	app.Add(reconciliationGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PopGen requires several files to read and process population genomic data. To
reduce the burden of keeping track of many files, a single project file is
used to hold the reference of all files required in the analysis. This guide
explains the structure of the file, but most of the time, the best and most
secure way to edit or view this file is by using popgen commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# popgen project files
	dataset	path
	alignments	alignments.tab
	populations	populations.tab
	reconciliation	ranger-out.txt
	trees	trees.tab

The valid file types are:

- Gene alignments. Defined by the dataset keyword "alignments". This file is
  a tab-delimited list with a gene cluster identifier and the path of the
  alignment file of that cluster, one cluster per row.
- Gene information tables. Defined by the dataset keyword "geneinfo". This
  file is the table exported from an ITEP pangenome database with the
  location and annotation of each gene.
- Population assignments. Defined by the dataset keyword "populations". This
  file contains the assignment of each taxon to a population in the form of
  a tab-delimited file.
- Reconciliation reports. Defined by the dataset keyword "reconciliation".
  This file is the output of a gene tree-species tree reconciliation program
  such as Ranger-DTL.
- Result databases. Defined by the dataset keywords "popgen-db" and
  "rdtl-db". These files are SQLite databases used as sinks for the results
  of the popstat and rdtl commands.
- Species trees. Defined by the dataset keyword "trees". This file contains
  one or more species trees in the form of a tab-delimited file, with every
  internal node labeled, so the trees can be used in a reconciliation
  analysis. The recommended way to add a tree file is by using the command
  'popgen tree add', which validates the trees as they are added.
	`,
}

var populationFilesGuide = &command.Command{
	Usage: "population-files",
	Short: "about population assignment files",
	Long: `
Population genetic statistics compare groups of sequences. In PopGen, the
groups are defined in a population assignment file, a tab-delimited file with
the following columns:

	- taxon       the name of the taxon,
	              as used in the sequence alignments
	- population  the name of the assigned population

Here is an example file:

	taxon	population
	M.24.YNP	yellowstone
	M.25.YNP	yellowstone
	M.31.KAM	kamchatka
	M.33.KAM	kamchatka

Each taxon belongs to a single population. Statistics between two populations
are always calculated over the pairs formed by a taxon of the first
population and a taxon of the second population, never over pairs inside a
population.

In a PopGen project, the file that contains the population assignments is
indicated with the "populations" keyword.
	`,
}

var reconciliationGuide = &command.Command{
	Usage: "reconciliations",
	Short: "about reconciliation reports",
	Long: `
A reconciliation program, such as Ranger-DTL, maps the nodes of a set of gene
trees onto a species tree, inferring a speciation, duplication, or transfer
event for each internal node of each gene tree. The popgen rdtl commands read
the textual report of such a program.

The report contains a single species tree, written in newick after a
"Species Tree:" header, with every internal node labeled. Because the labels
are arbitrary (the program assigns them), popgen identifies each internal
node by a fingerprint: the pair of terminals whose last common ancestor is
that node, sorted and joined by "|" (for example, the ancestor of A and B is
reported as "A|B"). If an internal node of the species tree has no label, or
the same label appears on two nodes, the report can not be parsed; the usual
cause is bootstrap values left on the internal nodes of the input trees.

Each gene tree is reported as a block: a header with the index of the tree, a
"Reconciliation:" line, one line per gene tree node, and a closing line with
the minimum reconciliation cost and the counts of duplications, transfers,
and losses. Any unrecognized line inside a block stops the parsing with an
error; a report must be fixed and parsed again, there is no partial output.
	`,
}
