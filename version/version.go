package version

import "runtime/debug"

// Version is set at build time with
// -ldflags "-X github.com/DefiantLabs/pnl-export-cli/version.Version=v1.2.3"
var Version = ""

// Current returns the running version: the ldflags value, else the module version
// recorded in the build info, else "devel".
func Current() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}
