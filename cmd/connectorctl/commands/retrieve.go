package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Retrieve returns the command for pulling remote files.
//
// By default the command reads pending entries from the tracking table,
// starts a retrieval transfer into the landing bucket, and marks the entries
// in_progress. With no pending entries, stuck in_progress entries are reset
// to pending for the next run. With --remote-dir, the remote directory is
// listed through the connector and everything found is retrieved instead.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
//	--enqueue, -e: Remote file paths to register as pending before retrieving
//	--remote-dir, -d: Remote directory to list and retrieve in full
func Retrieve() *cobra.Command {
	var (
		configPath string
		enqueue    []string
		remoteDir  string
	)

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve remote files into the landing bucket",
		Long: `Retrieve remote files into the landing bucket.

All tracking entries in 'pending' state are submitted as one retrieval
transfer and moved to 'in_progress'. When nothing is pending, entries
stuck in 'in_progress' are reset to 'pending' so the next run retries
them.

With --remote-dir, the directory is listed through the connector and
every file found is retrieved and tracked, without touching the pending
queue.

Examples:
  # Retrieve everything currently pending
  connectorctl retrieve

  # Register remote paths and retrieve them in one step
  connectorctl retrieve -e /outbox/report.csv -e /outbox/invoices.zip

  # Discover and retrieve everything in a remote directory
  connectorctl retrieve -d /uploads`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remoteDir != "" && len(enqueue) > 0 {
				return fmt.Errorf("--remote-dir cannot be combined with --enqueue")
			}
			return handlers.Retrieve(cmd.Context(), configPath, enqueue, remoteDir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")
	cmd.Flags().StringArrayVarP(&enqueue, "enqueue", "e", nil, "Remote file path to enqueue before retrieving (repeatable)")
	cmd.Flags().StringVarP(&remoteDir, "remote-dir", "d", "", "Remote directory to list and retrieve in full")

	return cmd
}
