// Package main is the entry point for the bchctl command.
package main

import (
	"os"

	"github.com/ppopth/bch-codec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
