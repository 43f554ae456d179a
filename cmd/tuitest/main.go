// Package main is the entry point for tuitest - a debug CLI for the terminal
// test harness.
package main

import (
	"os"

	"github.com/rafaeltab/tuitest/cmd/tuitest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
