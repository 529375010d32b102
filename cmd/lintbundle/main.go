// Package main is the entry point for the lintbundle CLI.
package main

import (
	"os"

	"github.com/JNZader/lintbundle/cmd/lintbundle/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
