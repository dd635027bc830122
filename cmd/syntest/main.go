package main

import (
	"os"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/syntest/internal/cmd"
)

func main() {
	command, err := cmd.Build()
	if err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}

	if err := command.Execute(); err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}
}
