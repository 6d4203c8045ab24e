package commands

import (
	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Probe returns the command for testing connector connectivity once.
//
// Unlike bootstrap, probe never modifies the connector: it issues a single
// test-connection call and reports the result.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
//	--json: Output the probe result as JSON
func Probe() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Test the connector's connection once",
		Long: `Test the connector's connection to the remote SFTP server.

This command issues a single test-connection call and reports the outcome.
It never modifies the connector; use 'connectorctl bootstrap' to apply a
discovered host key.

Examples:
  # Probe using connectorctl.yaml in current directory
  connectorctl probe

  # Probe with JSON output for scripting
  connectorctl probe --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Probe(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")

	return cmd
}
