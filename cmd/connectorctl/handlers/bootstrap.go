package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/connectorctl/connectorctl/internal/bootstrap"
	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/hostkey"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// bootstrapRunner interface for testing - matches bootstrap.Workflow.
type bootstrapRunner interface {
	Run(ctx context.Context) (*bootstrap.Result, error)
}

// newWorkflow creates the bootstrap workflow. Replaced in tests.
var newWorkflow = func(cfg *config.Config, client transfer.Client, opts ...bootstrap.Option) bootstrapRunner {
	scanner := hostkey.NewScanner(hostkey.WithTimeout(cfg.Bootstrap.ScanTimeout()))
	return bootstrap.New(
		cfg.Connector.ID,
		cfg.Connector.URL,
		&bootstrap.TransferProber{Connectors: client},
		&bootstrap.ScanDiscoverer{Scanner: scanner},
		&bootstrap.ConnectorReconciler{Connectors: client},
		opts...,
	)
}

// Bootstrap runs the host key bootstrap workflow for the configured connector.
//
// The workflow:
//  1. Checks local tooling (aws >= 2.x, jq) unless disabled; missing tools
//     skip the run instead of failing it
//  2. Tests the connection, retrying transient failures with a fixed delay
//  3. Harvests the remote host key from the probe response or an SSH scan
//  4. Replaces the connector's trusted host key set and re-tests
//
// Outcomes that end without a verified connection are reported as warnings,
// not errors: surrounding provisioning must never be blocked by an imperfect
// connectivity check. Only invalid inputs, AWS client construction failures,
// and context cancellation return an error.
func Bootstrap(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Bootstrapping host key for connector: %s", cfg.Connector.ID)

	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	warnMissingSecret(ctx, cfg)

	wf := newWorkflow(cfg, client, workflowOptions(cfg)...)
	res, err := wf.Run(ctx)
	if err != nil {
		return err
	}

	printBootstrapResult(cfg.Connector.ID, res)
	return nil
}

// workflowOptions maps the config's bootstrap section onto workflow options.
func workflowOptions(cfg *config.Config) []bootstrap.Option {
	opts := []bootstrap.Option{
		bootstrap.WithMaxAttempts(cfg.Bootstrap.Attempts()),
		bootstrap.WithRetryDelay(cfg.Bootstrap.RetryDelay()),
	}
	if len(cfg.Bootstrap.TransientPatterns) > 0 {
		opts = append(opts, bootstrap.WithClassifier(bootstrap.NewClassifier(cfg.Bootstrap.TransientPatterns...)))
	}
	if !cfg.Bootstrap.SkipPrerequisites {
		opts = append(opts, bootstrap.WithPreflight(func() []string {
			return checkBootstrapPrereqs().MissingNames()
		}))
	}
	return opts
}

// warnMissingSecret checks that the configured credentials secret exists.
// A missing secret is the most common cause of transient probe failures, so
// surfacing it early saves a retry cycle; the check itself is best-effort.
func warnMissingSecret(ctx context.Context, cfg *config.Config) {
	if cfg.Connector.SecretID == "" {
		return
	}
	sc, err := newSecretsClient(ctx, cfg.Region)
	if err != nil {
		return
	}
	exists, err := sc.SecretExists(ctx, cfg.Connector.SecretID)
	if err != nil {
		return
	}
	if !exists {
		log.Printf("warning: credentials secret %s does not exist yet", cfg.Connector.SecretID)
	}
}

// printBootstrapResult outputs the workflow outcome and next steps.
func printBootstrapResult(connectorID string, res *bootstrap.Result) {
	fmt.Println()
	switch res.Outcome {
	case bootstrap.OutcomeVerified:
		fmt.Printf("Connector %s verified after %d attempt(s).\n", connectorID, res.Attempts)
		if res.Reconciled {
			fmt.Printf("Trusted host key applied (source: %s):\n  %s\n", res.KeySource, res.HostKey)
		} else {
			fmt.Println("Trusted host key set was already correct; nothing changed.")
		}
	case bootstrap.OutcomeSkipped:
		fmt.Printf("Bootstrap skipped: %s\n", res.SkipReason)
		fmt.Println("Install the missing tools and re-run 'connectorctl bootstrap'.")
	case bootstrap.OutcomeKeyNotFound:
		fmt.Printf("Warning: no host key found after %d attempt(s).\n", res.Attempts)
		fmt.Println("The connector's trusted host key set is unchanged.")
		fmt.Println("Check that the remote server is reachable and re-run 'connectorctl bootstrap'.")
	case bootstrap.OutcomeUnverified:
		fmt.Printf("Warning: host key applied but the connection is not verified.\n")
		if res.HostKey != "" {
			fmt.Printf("Applied key (source: %s):\n  %s\n", res.KeySource, res.HostKey)
		}
		fmt.Println("Run 'connectorctl probe' once credentials have propagated.")
	}

	if len(res.Warnings) > 0 {
		fmt.Println("\nDiagnostics:")
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}
