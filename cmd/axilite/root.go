package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables that provide flag defaults. They can also be set in
// a .env file in the working directory.
const (
	envConfig = "AXILITE_CONFIG"
	envTrace  = "AXILITE_TRACE"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "axilite",
	Short: "Cycle-accurate AXI4-Lite register slave simulator.",
	Long: `axilite simulates the slave side of an AXI4-Lite bus attached to ` +
		`a bank of registers. It runs scripted bus transactions against the ` +
		`slave one clock edge at a time.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose output")
}

// loadEnv reads .env when it exists. A missing file is not an error.
func loadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
