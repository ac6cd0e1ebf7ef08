package cmd

import (
	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/spf13/cobra"
)

var exportConfig config.Config

func init() {
	config.SetupLogFlags(&exportConfig.Log, exportCmd)
	config.SetupSettingsFlags(&exportConfig.Settings, exportCmd)
	config.SetupReportFlags(&exportConfig.Report, exportCmd, true)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes the pnl report of an accounting run into a directory.",
	Long: `Reads the processed events and pnl totals of an accounting run and writes all_events.csv
	into the report directory. Spreadsheet formulas, the summary block and an XLSX copy of the
	report are controlled by the settings flags or a settings profile.`,
	PreRunE: setupExport,
	Run: func(cmd *cobra.Command, args []string) {
		settings, report, exporter, err := exportInputs(exportConfig)
		if err != nil {
			config.Log.Fatal("Error loading export inputs", err)
		}

		success, msg := exporter.Export(settings, csv.ProcessedEvents(report.Events), report.Pnls, exportConfig.Report.Directory)
		if !success {
			config.Log.Fatalf("Export to %s failed: %s", exportConfig.Report.Directory, msg)
		}
		config.Log.Infof("Report written to %s", exportConfig.Report.Directory)
	},
}

func setupExport(cmd *cobra.Command, args []string) error {
	exportConfig = setup(cmd, exportConfig)
	return exportConfig.ValidateExport(true)
}
