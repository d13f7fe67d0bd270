package main

import (
	"os"

	"github.com/mmibrah2/OpenQL/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
