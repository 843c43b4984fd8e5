// Package main provides the entry point for the featsel CLI.
package main

import (
	"os"

	"github.com/YuminosukeSato/featsel/cmd/featsel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
