package main

import (
	"os"

	"github.com/apper-canvas/flowforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
