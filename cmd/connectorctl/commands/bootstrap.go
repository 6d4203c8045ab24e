package commands

import (
	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Bootstrap returns the command for bootstrapping a connector's trusted host key.
//
// A freshly created SFTP connector has an empty trusted host key set. This
// command probes the connector, harvests the remote server's host key (from
// the probe response when the service surfaces one, otherwise by an
// independent SSH scan), applies it, and verifies the connection.
//
// The workflow retries on transient conditions (IAM and secret propagation)
// with a fixed delay. Terminal failures are soft: a connector that could not
// be verified is reported as a warning, not an error, so surrounding
// provisioning is never blocked by an imperfect connectivity check.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
//
// Environment variables:
//
//	AWS credentials are resolved from the default chain (profile, env vars,
//	or instance role).
func Bootstrap() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap the connector's trusted host key",
		Long: `Bootstrap the connector's trusted host key and verify the connection.

This command closes the trust gap of a freshly created connector: it tests
the connection, discovers the remote server's host key, replaces the
connector's trusted host key set with it, and re-tests.

If no config file is specified, it looks for connectorctl.yaml in the
current directory. Use 'connectorctl init' to create a configuration file.

Examples:
  # Bootstrap using connectorctl.yaml in current directory
  connectorctl bootstrap

  # Bootstrap using a specific config file
  connectorctl bootstrap -c production.yaml

  # Re-run after rotating the remote server's host key
  connectorctl bootstrap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Bootstrap(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")

	return cmd
}
