package config

import (
	"encoding/json"

	"github.com/DefiantLabs/pnl-export-cli/util"
)

const DefaultEthExplorer = "https://etherscan.io/tx/"

type frontendSettings struct {
	Explorers map[string]struct {
		Transaction string `json:"transaction"`
	} `json:"explorers"`
}

// EthExplorerFromFrontendSettings reads the user's ETH transaction explorer out of the
// frontend settings JSON. Anything unparsable or missing gives the default explorer.
func EthExplorerFromFrontendSettings(raw string) string {
	if raw == "" {
		return DefaultEthExplorer
	}

	var settings frontendSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		Log.Warn("Could not parse frontend settings, using default explorer", err)
		return DefaultEthExplorer
	}

	eth, ok := settings.Explorers["ETH"]
	if !ok || eth.Transaction == "" {
		return DefaultEthExplorer
	}

	Log.Debugf("Using %s as ETH explorer", util.GetDomain(eth.Transaction))
	return eth.Transaction
}
