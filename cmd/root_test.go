package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlags(t *testing.T) {
	var cfg config.Config
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	config.SetupLogFlags(&cfg.Log, cmd)
	config.SetupReportFlags(&cfg.Report, cmd, true)
	require.NoError(t, cmd.ParseFlags([]string{"--report.path", "cli.json"}))

	v := viper.New()
	v.Set("report.path", "file.json")
	v.Set("report.directory", "out")
	v.Set("log.level", "debug")
	bindFlags(cmd, v)

	assert.Equal(t, "cli.json", cfg.Report.Path, "flags given on the command line win")
	assert.Equal(t, "out", cfg.Report.Directory)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.json")
	report := []byte(`{
		"events": [{"type": "trade", "notes": "Amount in", "location": "kraken", "timestamp": 1609459200,
			"asset": "ETH", "taxable_amount": "1", "price": "100", "pnl": {"free": "0", "taxable": "0"}}],
		"pnls": [{"category": "trade", "free": "0", "taxable": "0"}]
	}`)
	require.NoError(t, os.WriteFile(reportPath, report, 0o600))
	out := filepath.Join(dir, "out")

	rootCmd.SetArgs([]string{"export", "--report.path", reportPath, "--report.directory", out, "--settings.summary"})
	require.NoError(t, Execute())

	content, err := os.ReadFile(filepath.Join(out, csv.FilenameAllCSV))
	require.NoError(t, err)
	assert.Contains(t, string(content), "type,notes,location,timestamp,asset,free_amount,taxable_amount,price,pnl,cost_basis")
	assert.Contains(t, string(content), "TOTAL")
	assert.True(t, exportConfig.Settings.Summary)
}
