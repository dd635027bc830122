package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/syntest/internal/harness"
	"go.followtheprocess.codes/syntest/internal/syntest"
)

const testLong = `
The test command runs every fixture under the path argument, which may be
a single fixture file or a directory that is walked recursively.

A fixture file is contract source followed by a '// ----' sentinel line
and the diagnostics the source is expected to produce, one per line. A
fixture passes when analysis reproduces exactly those diagnostics, in
order.

Each failing fixture stops the run and offers a choice: move on to the
next fixture, open the fixture in your editor ('--editor' or $EDITOR) and
re-run it, rewrite its expectations from the observed diagnostics and
re-run it, or quit.

A machine readable summary of the run can be written with '--report',
in the format given by '--report-format'.
`

// test returns the syntest test subcommand.
func test() (*cli.Command, error) {
	var options syntest.TestOptions

	return cli.New(
		"test",
		cli.Short("Run contract fixtures, triaging failures interactively"),
		cli.Long(testLong),
		cli.OptionalArg("path", "Path to test, may be directory or file", "."),
		cli.Flag(&options.NoColor, "no-color", 'n', false, "Disable color output"),
		cli.Flag(&options.Editor, "editor", 'e', "", "Editor command for failing fixtures, defaults to $EDITOR"),
		cli.Flag(&options.Report, "report", 'r', "", "Write a machine readable run report to this file"),
		cli.Flag(&options.ReportFormat, "report-format", 'f', "json", "Report format, one of json, toml or yaml"),
		cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
		cli.Run(func(cmd *cli.Command, args []string) error {
			app := syntest.New(options.Debug, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())

			input := harness.TerminalInput{
				Stdin:  cmd.Stdin(),
				Stdout: cmd.Stdout(),
			}

			return app.Test(context.Background(), cmd.Arg("path"), input, options)
		}),
	)
}
