// Package main provides the entry point for axilite.
// axilite is a cycle-accurate AXI4-Lite register slave simulator built on
// Akita.
//
// For the full CLI, use: go run ./cmd/axilite
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("axilite - AXI4-Lite Register Slave Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: axilite <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run <script.json>  Run a transaction script against the slave")
	fmt.Println("  config             Print, write or check a slave configuration")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/axilite' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/axilite' instead.")
	}
}
