package main

import (
	"os"

	"github.com/sprout-cli/sprout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
