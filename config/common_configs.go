package config

import (
	"time"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/spf13/cobra"
)

// These flags are shared by several commands

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path, logs only go to stderr if empty")
}

func SetupSettingsFlags(settingsConf *settings, cmd *cobra.Command) {
	defaults := accounting.DefaultSettings()
	cmd.PersistentFlags().BoolVar(&settingsConf.Formulas, "settings.formulas", defaults.IncludeFormulas, "write spreadsheet formulas for pnl and cost basis")
	cmd.PersistentFlags().BoolVar(&settingsConf.Summary, "settings.summary", defaults.IncludeSummary, "append the summary block to the report")
	cmd.PersistentFlags().BoolVar(&settingsConf.XLSX, "settings.xlsx", defaults.IncludeXLSX, "also write the report as an xlsx workbook")
	cmd.PersistentFlags().StringVar(&settingsConf.Profile, "settings.profile", "", "toml file with the accounting settings of the report")
	cmd.PersistentFlags().StringVar(&settingsConf.Frontend, "settings.frontend", "", "frontend settings JSON, used for the transaction explorer")
}

func SetupReportFlags(reportConf *report, cmd *cobra.Command, withDirectory bool) {
	cmd.Flags().StringVar(&reportConf.Path, "report.path", "", "JSON report produced by the accounting run")
	if withDirectory {
		cmd.Flags().StringVar(&reportConf.Directory, "report.directory", "", "directory to write the report into, created if missing")
	}
}

func SetupAPIFlags(apiConf *api, cleanupConf *cleanup, cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiConf.Host, "api.host", ":8080", "address the API listens on")
	cmd.Flags().StringVar(&apiConf.ExportRoot, "api.export-root", "", "directory holding the temporary archive directories (default is the system temp dir)")
	cmd.Flags().DurationVar(&cleanupConf.Interval, "cleanup.interval", time.Hour, "how often stale archives are removed, 0 disables cleanup")
	cmd.Flags().DurationVar(&cleanupConf.MaxAge, "cleanup.max-age", 6*time.Hour, "age after which an archive directory is removed")
}
