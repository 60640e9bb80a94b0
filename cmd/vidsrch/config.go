package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/vidsrch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/vidsrch/config.toml",
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(writeDefaultConfig(os.Stdout, config.DefaultPath()))
	},
}

func init() {
	configCmd.AddCommand(configGenCmd)
}

func writeDefaultConfig(w io.Writer, path string) error {
	if err := config.GenerateDefaultConfig(path); err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	fmt.Fprintf(w, "Generated default configuration at: %s\n", path)
	return nil
}
