// Package main is the entry point for the asset-tracker CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/asset-tracker/cmd/asset-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
