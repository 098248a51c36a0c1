package main

import (
	"os"

	"github.com/ariel-frischer/changelog-md/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCodeFor(err))
	}
}
