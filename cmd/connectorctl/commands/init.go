package commands

import (
	"github.com/spf13/cobra"

	"github.com/connectorctl/connectorctl/cmd/connectorctl/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating a connectorctl configuration
// YAML file using an interactive wizard with text inputs, single-select, and
// confirm prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "connectorctl.yaml")
//	--advanced, -a: Show advanced configuration options
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a connectorctl configuration file.

This command guides you through configuring your SFTP connector
step by step. It will ask about:

  - Connector identity (ID, SFTP endpoint, region)
  - Secrets Manager credentials (optional)
  - File transfer tracking (S3 bucket and DynamoDB table, optional)

Use --advanced for additional options like the probe attempt budget,
retry delay, and tooling checks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "connectorctl.yaml", "Output file path")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Show advanced configuration options")

	return cmd
}
