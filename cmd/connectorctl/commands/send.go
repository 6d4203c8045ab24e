package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Send returns the command for pushing bucket objects to the remote endpoint.
//
// Exactly one of --key or --prefix must be given: --key sends one staged
// object, --prefix sweeps every object under a prefix in one transfer.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
//	--key, -k: Object key to send
//	--prefix, -p: Key prefix to sweep
func Send() *cobra.Command {
	var (
		configPath string
		key        string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send bucket objects to the remote SFTP server",
		Long: `Send staged bucket objects to the remote SFTP server.

With --key, a single object is verified to exist and pushed. With
--prefix, every object under the prefix is pushed in one transfer; an
empty sweep is not an error.

Examples:
  # Send one object
  connectorctl send -k outbox/report.csv

  # Send everything staged under a prefix
  connectorctl send -p outbox/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (key == "") == (prefix == "") {
				return fmt.Errorf("exactly one of --key or --prefix is required")
			}
			return handlers.Send(cmd.Context(), configPath, key, prefix)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key to send")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Key prefix to sweep")

	return cmd
}
