// Package main is the entry point for the connectorctl CLI.
//
// connectorctl manages AWS Transfer Family SFTP connectors: it bootstraps
// a connector's trusted host key after creation, probes connectivity, and
// drives file transfers tracked in DynamoDB.
//
// Commands: init, bootstrap, probe, status, retrieve, send, check.
//
// For detailed usage information, run:
//
//	connectorctl --help
package main

import (
	"fmt"
	"os"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
