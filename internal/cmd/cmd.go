// Package cmd implements syntest's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the syntest CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"syntest",
		cli.Short("A fixture driven syntax test harness for contract source"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Run all fixtures under a directory", "syntest test ./testdata"),
		cli.Example("Run a single fixture file", "syntest test ./testdata/smoke.ct"),
		cli.Example("Run fixtures and write a JSON report", "syntest test ./testdata --report results.json"),
		cli.Example("Check contract files for errors", "syntest check ./contracts"),
		cli.Allow(cli.NoArgs()),
		cli.SubCommands(test, check),
	)
}
