// Package main is the entry point for the registry maintenance CLI.
package main

import (
	"os"

	"github.com/subsquid-labs/registry-tools/cmd/registry-tool/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
