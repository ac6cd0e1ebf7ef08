package cmd

import (
	"fmt"

	"github.com/DefiantLabs/pnl-export-cli/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version written into report summaries.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Current())
	},
}
