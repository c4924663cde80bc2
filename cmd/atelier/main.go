package main

import (
	"os"

	"github.com/sculptstudio/atelier/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
