package main

import (
	"os"

	"github.com/DefiantLabs/pnl-export-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
