package main

import (
	"os"

	"github.com/roach88/ropias/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
