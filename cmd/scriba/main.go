package main

import (
	"os"

	"github.com/jymfony/scriba/internal/cli/commands"
)

// Version information is injected with -ldflags, e.g.
//
//	-X github.com/jymfony/scriba/internal/cli/commands.Version=v1.2.0
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
