package main

import (
	"os"

	"github.com/harborworks/dockhand/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
