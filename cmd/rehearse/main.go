package main

import (
	"os"

	"github.com/quietroom/rehearse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
