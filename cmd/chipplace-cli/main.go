// chipplace-cli — headless placer for scripted and CI use.
//
// Build:
//   go build -o chipplace-cli ./cmd/chipplace-cli
//
// With version info:
//   go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/chipplace-cli

package main

import (
	"os"

	"github.com/piwi3910/ChipPlace/internal/cli"
)

// Injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
