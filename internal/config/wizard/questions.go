package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/connectorctl/connectorctl/internal/hostkey"
)

// connectorIDRegex validates the Transfer Family connector ID format.
var connectorIDRegex = regexp.MustCompile(`^c-[0-9a-f]{17}$`)

// runConnectorGroup prompts for connector identity and credentials.
func runConnectorGroup(ctx context.Context, result *WizardResult) error {
	result.Region = Regions[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Connector ID").
				Description("AWS Transfer Family connector identifier").
				Placeholder("c-0123456789abcdef0").
				Value(&result.ConnectorID).
				Validate(validateConnectorID),
			huh.NewInput().
				Title("SFTP Endpoint").
				Description("Remote SFTP server the connector talks to").
				Placeholder("sftp://sftp.partner.example:22").
				Value(&result.EndpointURL).
				Validate(validateEndpoint),
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region hosting the connector").
				Options(RegionsToOptions()...).
				Value(&result.Region),
			huh.NewInput().
				Title("Secret ID (Optional)").
				Description("Secrets Manager secret holding SFTP credentials. Leave empty to keep the connector's current secret.").
				Placeholder("sftp-partner-creds (or leave empty)").
				Value(&result.SecretID),
		).Title("Connector"),
	).RunWithContext(ctx)
}

// runTransfersGroup prompts for file transfer tracking configuration.
func runTransfersGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Configure File Transfers?").
				Description("Track retrieve/send operations in a DynamoDB table").
				Value(&result.ConfigureTransfers),
		).Title("File Transfers"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.ConfigureTransfers {
		return nil
	}

	result.RetrievePrefix = "retrieved"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("S3 Bucket").
				Description("Bucket the connector reads from and writes to").
				Placeholder("partner-landing").
				Value(&result.Bucket).
				Validate(validateBucket),
			huh.NewInput().
				Title("Tracking Table").
				Description("DynamoDB table tracking per-file transfer status").
				Placeholder("partner-files").
				Value(&result.TrackingTable).
				Validate(validateTable),
			huh.NewInput().
				Title("Retrieve Prefix").
				Description("Key prefix under the bucket for retrieved files").
				Value(&result.RetrievePrefix),
		).Title("Transfer Tracking"),
	).RunWithContext(ctx)
}

// runBootstrapGroup prompts for bootstrap retry behavior (advanced mode).
func runBootstrapGroup(ctx context.Context, opts *AdvancedOptions) error {
	opts.MaxAttempts = 3
	opts.RetryDelaySeconds = 10

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Probe Attempts").
				Description("How many times to test the connection before giving up").
				Options(AttemptOptions...).
				Value(&opts.MaxAttempts),
			huh.NewSelect[int]().
				Title("Retry Delay").
				Description("Wait between attempts while IAM and secrets propagate").
				Options(RetryDelayOptions...).
				Value(&opts.RetryDelaySeconds),
			huh.NewConfirm().
				Title("Skip Tooling Checks").
				Description("Do not require aws and jq on PATH before bootstrapping").
				Value(&opts.SkipPrerequisites),
		).Title("Bootstrap Options"),
	).RunWithContext(ctx)
}

// validateConnectorID validates the connector ID format.
func validateConnectorID(s string) error {
	if s == "" {
		return errConnectorIDRequired
	}
	if !connectorIDRegex.MatchString(s) {
		return errConnectorIDInvalid
	}
	return nil
}

// validateEndpoint validates the SFTP endpoint URL.
func validateEndpoint(s string) error {
	if s == "" {
		return errEndpointRequired
	}
	if _, err := hostkey.ParseEndpoint(s); err != nil {
		return err
	}
	return nil
}

// validateBucket validates the S3 bucket name is present.
func validateBucket(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBucketRequired
	}
	return nil
}

// validateTable validates the tracking table name is present.
func validateTable(s string) error {
	if strings.TrimSpace(s) == "" {
		return errTableRequired
	}
	return nil
}
