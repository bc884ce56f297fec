package main

import (
	"os"

	"github.com/rhizome-lab/moss/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
