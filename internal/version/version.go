// Package version reports the csscolor build version.
package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X bennypowers.dev/csscolor/internal/version.Version=v1.2.3"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// String returns the version printed by --version: the ldflags version, or
// the module version from build info, or "dev". A known commit is appended.
func String() string {
	v := Version
	if v == "dev" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}

	if Commit != "unknown" && Commit != "" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		if !strings.Contains(v, short) {
			v += " (" + short + ")"
		}
	}
	return v
}

// Info returns build metadata for the verbose version output
func Info() map[string]string {
	return map[string]string{
		"version":   String(),
		"commit":    Commit,
		"buildTime": BuildTime,
	}
}
