package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidsrch %s\n", Version)
		fmt.Println("Video library search")
		fmt.Println("github.com/pders01/vidsrch")
	},
}
