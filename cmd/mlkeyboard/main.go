package main

import (
	"fmt"
	"os"

	"github.com/BrandonKowalski/mlkeyboard/internal/cli"
)

// Build information set via ldflags
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
