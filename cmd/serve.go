package cmd

import (
	"strings"
	"time"

	"github.com/DefiantLabs/pnl-export-cli/client"
	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/tasks"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
)

var serveConfig config.Config

func init() {
	config.SetupLogFlags(&serveConfig.Log, serveCmd)
	config.SetupSettingsFlags(&serveConfig.Settings, serveCmd)
	config.SetupAPIFlags(&serveConfig.API, &serveConfig.Cleanup, serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the pnl export over HTTP.",
	Long: `Starts an HTTP API that exports reports posted to it, either into a directory
	(POST /pnl/export) or as a zip download (POST /pnl/download). Archive directories are
	removed periodically, metrics are served on /metrics.`,
	PreRunE: setupServe,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := serveConfig.AccountingSettings()
		if err != nil {
			config.Log.Fatal("Error loading accounting settings", err)
		}

		scheduler := gocron.NewScheduler(time.UTC)
		err = tasks.ScheduleCleanup(scheduler, serveConfig.API.ExportRoot, serveConfig.Cleanup.Interval, serveConfig.Cleanup.MaxAge)
		if err != nil {
			config.Log.Fatal("Error scheduling the archive cleanup", err)
		}
		scheduler.StartAsync()
		defer scheduler.Stop()

		if !strings.EqualFold(serveConfig.Log.Level, "debug") {
			gin.SetMode(gin.ReleaseMode)
		}

		server := client.NewServer(newExporter(serveConfig), settings)
		config.Log.Infof("Serving pnl exports on %s", serveConfig.API.Host)
		if err := server.Router().Run(serveConfig.API.Host); err != nil {
			config.Log.Fatal("Error starting server", err)
		}
	},
}

func setupServe(cmd *cobra.Command, args []string) error {
	serveConfig = setup(cmd, serveConfig)
	return serveConfig.ValidateAPI()
}
