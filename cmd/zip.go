package cmd

import (
	"fmt"

	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/spf13/cobra"
)

var zipConfig config.Config

func init() {
	config.SetupLogFlags(&zipConfig.Log, zipCmd)
	config.SetupSettingsFlags(&zipConfig.Settings, zipCmd)
	config.SetupReportFlags(&zipConfig.Report, zipCmd, false)
	zipCmd.Flags().StringVar(&zipConfig.API.ExportRoot, "api.export-root", "", "directory holding the temporary archive directory (default is the system temp dir)")
	rootCmd.AddCommand(zipCmd)
}

var zipCmd = &cobra.Command{
	Use:   "zip",
	Short: "Exports the pnl report into a temporary directory and packs it as csv.zip.",
	Long: `Exports the pnl report into a new temporary directory, packs the produced files into
	csv.zip and prints the absolute path of the archive.`,
	PreRunE: setupZip,
	Run: func(cmd *cobra.Command, args []string) {
		settings, report, exporter, err := exportInputs(zipConfig)
		if err != nil {
			config.Log.Fatal("Error loading export inputs", err)
		}

		success, path := exporter.CreateZip(settings, csv.ProcessedEvents(report.Events), report.Pnls)
		if !success {
			config.Log.Fatalf("Could not create the report archive: %s", path)
		}
		fmt.Println(path)
	},
}

func setupZip(cmd *cobra.Command, args []string) error {
	zipConfig = setup(cmd, zipConfig)
	return zipConfig.ValidateExport(false)
}
