package wizard

import "github.com/connectorctl/connectorctl/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Region: result.Region,
		Connector: config.Connector{
			ID:       result.ConnectorID,
			URL:      result.EndpointURL,
			SecretID: result.SecretID,
		},
	}

	if result.ConfigureTransfers {
		cfg.Transfers = config.Transfers{
			Bucket:        result.Bucket,
			TrackingTable: result.TrackingTable,
		}
		// Only record the prefix when it differs from the default
		if result.RetrievePrefix != "" && result.RetrievePrefix != "retrieved" {
			cfg.Transfers.RetrievePrefix = result.RetrievePrefix
		}
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(cfg, result.AdvancedOptions)
	}

	return cfg
}

// applyAdvancedOptions applies advanced options to the config.
func applyAdvancedOptions(cfg *config.Config, opts *AdvancedOptions) {
	if opts.MaxAttempts > 0 {
		cfg.Bootstrap.MaxAttempts = opts.MaxAttempts
	}
	if opts.RetryDelaySeconds > 0 {
		cfg.Bootstrap.RetryDelaySeconds = opts.RetryDelaySeconds
	}
	cfg.Bootstrap.SkipPrerequisites = opts.SkipPrerequisites
}
