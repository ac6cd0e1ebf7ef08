package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/accounting/staking"
	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/DefiantLabs/pnl-export-cli/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile   string       // config file location to load
	viperConf = viper.New() // values read from the config file, applied to flags that were not set
	rootCmd   = &cobra.Command{
		Use:   "pnl-export",
		Short: "A CLI tool for exporting profit and loss reports",
		Long: `PnL Export is a CLI tool that turns the events and totals of an accounting run
		into a spreadsheet ready CSV report, optionally with an XLSX twin, a zip archive or an HTTP API.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// initConfig on initialize of cobra guarantees the config file is read before all subcommands are executed
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pnl-export/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viperConf.SetConfigFile(cfgFile)
		viperConf.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.pnl-export", home)
		}
		viperConf.AddConfigPath(cfgFile)
		viperConf.SetConfigType("toml")
		viperConf.SetConfigName("config")
	}

	err := viperConf.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
		return
	}

	config.Log.Infof("CFG successfully read from: %s", viperConf.ConfigFileUsed())
	if ignored := config.CheckSuperfluousConfigKeys(viperConf.AllKeys()); len(ignored) != 0 {
		config.Log.Warnf("Ignoring unknown config keys: %v", ignored)
	}
}

// bindFlags sets every flag the user did not pass from the config file. Flag names and
// config keys are the same ("log.level" is [log] level = ...).
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := v.Get(f.Name)
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			log.Fatalf("Failed to bind config key %s to flag. Err: %v", f.Name, err)
		}
	})
}

// setup applies the config file to the flags, fills unset values from the defaults and
// configures the logger. The merged config is returned.
func setup(cmd *cobra.Command, cfg config.Config) config.Config {
	bindFlags(cmd, viperConf)
	cfg = config.MergeConfigs(config.DefaultConfig(), cfg)
	config.DoConfigureLogger(cfg.Log.Path, cfg.Log.Level, cfg.Log.Pretty)
	return cfg
}

// exportInputs loads everything an export needs from the config
func exportInputs(cfg config.Config) (accounting.Settings, *accounting.Report, *csv.Exporter, error) {
	settings, err := cfg.AccountingSettings()
	if err != nil {
		return settings, nil, nil, err
	}

	report, err := staking.LoadReport(cfg.Report.Path)
	if err != nil {
		return settings, nil, nil, err
	}

	exporter := newExporter(cfg)
	return settings, report, exporter, nil
}

func newExporter(cfg config.Config) *csv.Exporter {
	exporter := csv.NewExporter(config.EthExplorerFromFrontendSettings(cfg.Settings.Frontend), version.Current)
	exporter.TempRoot = cfg.API.ExportRoot
	return exporter
}
