package main

import (
	"os"

	"github.com/codeatlas-dev/codeatlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
