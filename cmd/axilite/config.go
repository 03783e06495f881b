package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/axilite/config"
)

var (
	configWritePath string
	configCheckPath string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print, write or check a slave configuration.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		if configCheckPath != "" {
			cfg, err := config.LoadConfig(configCheckPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", configCheckPath, err)
			}
			fmt.Fprintf(out, "%s: ok\n", configCheckPath)
			return nil
		}

		cfg := config.DefaultConfig()

		if configWritePath != "" {
			if err := cfg.SaveConfig(configWritePath); err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(out, "Wrote default config to %s\n", configWritePath)
			}
			return nil
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))

		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configWritePath, "write", "",
		"Write the default configuration to this file")
	configCmd.Flags().StringVar(&configCheckPath, "check", "",
		"Load and validate this configuration file")

	rootCmd.AddCommand(configCmd)
}
