package handlers

import (
	"context"
	"fmt"

	"github.com/connectorctl/connectorctl/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// wizardFileExists checks if a file exists.
	wizardFileExists = wizard.FileExists

	// wizardConfirmOverwrite prompts before overwriting an existing file.
	wizardConfirmOverwrite = wizard.ConfirmOverwrite

	// wizardRunWizard runs the interactive wizard.
	wizardRunWizard = wizard.RunWizard

	// wizardBuildConfig converts answers to a config.
	wizardBuildConfig = wizard.BuildConfig

	// wizardWriteConfig writes the config to a file.
	wizardWriteConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, advanced bool) error {
	if wizardFileExists(outputPath) {
		ok, err := wizardConfirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome(advanced)

	result, err := wizardRunWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizardBuildConfig(result)

	if err := wizardWriteConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, result)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome(advanced bool) {
	fmt.Println()
	fmt.Println("connectorctl - AWS Transfer Family SFTP connectors")
	fmt.Println("==================================================")
	fmt.Println()
	fmt.Println("This wizard creates a connectorctl configuration file.")
	if advanced {
		fmt.Println("Running in advanced mode: retry and tooling options included.")
	}
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, result *wizard.WizardResult) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Connector Summary")
	fmt.Println("-----------------")
	fmt.Printf("  Connector: %s\n", result.ConnectorID)
	fmt.Printf("  Endpoint:  %s\n", result.EndpointURL)
	fmt.Printf("  Region:    %s\n", result.Region)
	if result.SecretID != "" {
		fmt.Printf("  Secret:    %s\n", result.SecretID)
	}
	if result.ConfigureTransfers {
		fmt.Printf("  Bucket:    %s\n", result.Bucket)
		fmt.Printf("  Tracking:  %s\n", result.TrackingTable)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Make sure your AWS credentials are configured:")
	fmt.Println("     aws sts get-caller-identity")
	fmt.Println()
	fmt.Println("  2. Bootstrap the connector's trusted host key:")
	fmt.Println("     connectorctl bootstrap")
	fmt.Println()
	fmt.Println("  3. Check the result:")
	fmt.Println("     connectorctl status")
	fmt.Println()
}
