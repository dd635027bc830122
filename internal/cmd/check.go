package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/syntest/internal/syntest"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a .ct file, then this file alone is checked
for validity.

If it is a directory, this directory is scanned recursively for all
files with the '.ct' extension and any matching files will be validated.

Unlike fixtures, checked files are bare contract source with no
expectation block, and warnings do not make a file invalid.
`

// check returns the syntest check subcommand.
func check() (*cli.Command, error) {
	var options syntest.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check contract files for errors"),
		cli.Long(checkLong),
		cli.OptionalArg("path", "Path to check, may be directory or file", "."),
		cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
		cli.Run(func(cmd *cli.Command, args []string) error {
			app := syntest.New(options.Debug, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(context.Background(), cmd.Arg("path"), options)
		}),
	)
}
