package main

import (
	"os"

	"github.com/hpc-tools/moddrift/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
