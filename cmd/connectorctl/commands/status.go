package commands

import (
	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Status returns the command for showing connector and transfer state.
//
// The command describes the connector (trusted host keys, egress IPs,
// credentials secret) and, when transfer tracking is configured, summarizes
// the tracking table by status.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
//	--json: Output the status as JSON
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show connector configuration and transfer state",
		Long: `Show the connector's current configuration and transfer state.

This command describes the connector: its endpoint, trusted host key set,
static egress addresses, and credentials secret. When a tracking table is
configured, it also summarizes pending, in-progress, and completed
transfers.

Examples:
  # Show status using connectorctl.yaml in current directory
  connectorctl status

  # Status as JSON for scripting
  connectorctl status --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
