// Package config defines the connectorctl configuration file format.
//
// Configuration lives in connectorctl.yaml next to the project being
// provisioned. Use `connectorctl init` to generate one interactively.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/connectorctl/connectorctl/internal/hostkey"
)

// connectorIDRe matches Transfer Family connector identifiers.
var connectorIDRe = regexp.MustCompile(`^c-[0-9a-f]{17}$`)

// Config is the root configuration.
type Config struct {
	// Region is the AWS region; empty defers to the credential chain.
	Region string `yaml:"region,omitempty"`

	Connector Connector `yaml:"connector"`
	Bootstrap Bootstrap `yaml:"bootstrap,omitempty"`
	Transfers Transfers `yaml:"transfers,omitempty"`
}

// Connector identifies the managed connector and its endpoint.
type Connector struct {
	// ID is the connector identifier, e.g. c-0123456789abcdef0.
	ID string `yaml:"id"`

	// URL is the remote SFTP endpoint, e.g. sftp://sftp.example.com:22.
	URL string `yaml:"url"`

	// SecretID optionally names the credential secret for preflight
	// checks; when empty the connector's configured secret is used.
	SecretID string `yaml:"secretId,omitempty"`
}

// Bootstrap tunes the host key bootstrap workflow.
type Bootstrap struct {
	// MaxAttempts is the probe attempt budget (default 3).
	MaxAttempts int `yaml:"maxAttempts,omitempty"`

	// RetryDelaySeconds is the fixed wait between attempts (default 10).
	RetryDelaySeconds int `yaml:"retryDelaySeconds,omitempty"`

	// ScanTimeoutSeconds is the per-attempt host key scan timeout
	// (default 30).
	ScanTimeoutSeconds int `yaml:"scanTimeoutSeconds,omitempty"`

	// TransientPatterns overrides the probe messages treated as
	// transient. Empty keeps the built-in defaults.
	TransientPatterns []string `yaml:"transientPatterns,omitempty"`

	// SkipPrerequisites disables the client tooling preflight.
	SkipPrerequisites bool `yaml:"skipPrerequisites,omitempty"`
}

// Transfers configures file movement and tracking.
type Transfers struct {
	// Bucket is the staging bucket for retrievals and sends.
	Bucket string `yaml:"bucket,omitempty"`

	// RetrievePrefix is where retrieved files land (default "retrieved").
	RetrievePrefix string `yaml:"retrievePrefix,omitempty"`

	// TrackingTable is the DynamoDB file tracking table.
	TrackingTable string `yaml:"trackingTable,omitempty"`

	// CompletionWindowSeconds is how long an in-progress record may age
	// before the status checker marks it completed (default 120).
	CompletionWindowSeconds int `yaml:"completionWindowSeconds,omitempty"`
}

// RetryDelay returns the configured inter-attempt delay.
func (b Bootstrap) RetryDelay() time.Duration {
	if b.RetryDelaySeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.RetryDelaySeconds) * time.Second
}

// ScanTimeout returns the configured scan timeout.
func (b Bootstrap) ScanTimeout() time.Duration {
	if b.ScanTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.ScanTimeoutSeconds) * time.Second
}

// Attempts returns the configured attempt budget.
func (b Bootstrap) Attempts() int {
	if b.MaxAttempts <= 0 {
		return 3
	}
	return b.MaxAttempts
}

// CompletionWindow returns the configured status checker window.
func (t Transfers) CompletionWindow() time.Duration {
	if t.CompletionWindowSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(t.CompletionWindowSeconds) * time.Second
}

// Validate checks the configuration for structural errors. These are hard
// failures: bad inputs abort before any network activity.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Connector.ID) == "" {
		return fmt.Errorf("connector.id is required")
	}
	if !connectorIDRe.MatchString(c.Connector.ID) {
		return fmt.Errorf("connector.id %q is not a valid connector identifier", c.Connector.ID)
	}
	if strings.TrimSpace(c.Connector.URL) == "" {
		return fmt.Errorf("connector.url is required")
	}
	if _, err := hostkey.ParseEndpoint(c.Connector.URL); err != nil {
		return fmt.Errorf("connector.url: %w", err)
	}
	if c.Bootstrap.MaxAttempts < 0 {
		return fmt.Errorf("bootstrap.maxAttempts must not be negative")
	}
	if c.Bootstrap.RetryDelaySeconds < 0 {
		return fmt.Errorf("bootstrap.retryDelaySeconds must not be negative")
	}
	return nil
}

// ValidateTransfers checks the additional fields the transfer commands need.
func (c *Config) ValidateTransfers() error {
	if strings.TrimSpace(c.Transfers.Bucket) == "" {
		return fmt.Errorf("transfers.bucket is required for transfer commands")
	}
	if strings.TrimSpace(c.Transfers.TrackingTable) == "" {
		return fmt.Errorf("transfers.trackingTable is required for transfer commands")
	}
	return nil
}
