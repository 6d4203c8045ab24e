// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"

	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/platform/s3"
	"github.com/connectorctl/connectorctl/internal/platform/secrets"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
	"github.com/connectorctl/connectorctl/internal/transfers"
	"github.com/connectorctl/connectorctl/internal/util/prerequisites"
)

// objectStore is the bucket surface used by transfer handlers.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	ObjectExists(ctx context.Context, bucketName, key string) (bool, error)
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
}

// secretChecker verifies a credentials secret exists.
type secretChecker interface {
	SecretExists(ctx context.Context, secretID string) (bool, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newTransferClient creates a Transfer Family client.
	newTransferClient = func(ctx context.Context, region string) (transfer.Client, error) {
		return transfer.NewRealClient(ctx, region)
	}

	// newTrackingStore creates a tracking table store.
	newTrackingStore = func(ctx context.Context, region, table string) (transfers.Store, error) {
		return dynamo.NewClient(ctx, region, table)
	}

	// newObjectStore creates an S3 client.
	newObjectStore = func(ctx context.Context, region string) (objectStore, error) {
		return s3.NewClient(ctx, region)
	}

	// newSecretsClient creates a Secrets Manager client.
	newSecretsClient = func(ctx context.Context, region string) (secretChecker, error) {
		return secrets.NewClient(ctx, region)
	}

	// checkBootstrapPrereqs runs the local tooling check.
	checkBootstrapPrereqs = prerequisites.CheckBootstrap

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile
)

// loadConfig loads and validates the configuration. If configPath is empty,
// it looks for connectorctl.yaml in the current directory and its parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'connectorctl init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadTransfersConfig loads the configuration and additionally requires the
// transfer tracking section.
func loadTransfersConfig(configPath string) (*config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateTransfers(); err != nil {
		return nil, fmt.Errorf("transfers are not configured: %w", err)
	}
	return cfg, nil
}
