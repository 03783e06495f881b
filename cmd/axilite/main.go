// Package main provides the axilite command.
// axilite is a cycle-accurate AXI4-Lite register slave simulator.
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	if err := loadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		atexit.Exit(1)
	}

	if err := Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
