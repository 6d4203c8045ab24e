package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Connector Identity
	ConnectorID string
	EndpointURL string
	Region      string
	SecretID    string

	// Transfers (optional)
	ConfigureTransfers bool
	Bucket             string
	TrackingTable      string
	RetrievePrefix     string

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	// Bootstrap retry behavior
	MaxAttempts       int
	RetryDelaySeconds int

	// Skip local tooling checks before bootstrap
	SkipPrerequisites bool
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runConnectorGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("connector: %w", err)
	}

	if err := runTransfersGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("transfers: %w", err)
	}

	if advanced {
		advOpts := &AdvancedOptions{}

		if err := runBootstrapGroup(ctx, advOpts); err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}

		result.AdvancedOptions = advOpts
	}

	return result, nil
}
