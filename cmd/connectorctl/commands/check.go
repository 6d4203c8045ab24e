package commands

import (
	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Check returns the command for reconciling in-progress transfer records.
//
// Records are resolved against the connector's per-file transfer results:
// completed files are marked completed, failed files are reset to pending.
// Records whose results are unavailable fall back to the completion window
// and are completed by age.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect connectorctl.yaml)
func Check() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile in-progress transfers against transfer results",
		Long: `Reconcile in-progress transfer records in the tracking table.

Each record is resolved against the connector's per-file transfer results:
completed files are marked 'completed', failed files are reset to 'pending'
for a later retry. Records whose results are unavailable are completed once
they are older than the completion window (default 2 minutes). Run this
periodically after retrieve or send operations.

Examples:
  # Reconcile using connectorctl.yaml in current directory
  connectorctl check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Check(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: connectorctl.yaml)")

	return cmd
}
