package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
)

// ConnectorStatus is the aggregated connector and transfer state.
type ConnectorStatus struct {
	ConnectorID     string   `json:"connectorId"`
	URL             string   `json:"url"`
	Region          string   `json:"region,omitempty"`
	TrustedHostKeys []string `json:"trustedHostKeys"`
	EgressIPs       []string `json:"egressIPs,omitempty"`
	SecretID        string   `json:"secretId,omitempty"`
	SecretExists    *bool    `json:"secretExists,omitempty"`

	// Transfers is nil when no tracking table is configured.
	Transfers *TransferCounts `json:"transfers,omitempty"`
}

// TransferCounts summarizes the tracking table by status.
type TransferCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// Status shows the connector's configuration and transfer state.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	status, err := collectStatus(ctx, cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printStatusJSON(status)
	}

	if isInteractiveTTY() {
		fmt.Println(renderStatus(status))
		return nil
	}

	printStatusPlain(status)
	return nil
}

// collectStatus gathers connector, secret, and tracking table state.
func collectStatus(ctx context.Context, cfg *config.Config) (*ConnectorStatus, error) {
	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	info, err := client.DescribeConnector(ctx, cfg.Connector.ID)
	if err != nil {
		return nil, err
	}

	status := &ConnectorStatus{
		ConnectorID:     info.ID,
		URL:             info.URL,
		Region:          cfg.Region,
		TrustedHostKeys: info.TrustedHostKeys,
		EgressIPs:       info.EgressIPs,
		SecretID:        info.SecretID,
	}

	if info.SecretID != "" {
		if sc, err := newSecretsClient(ctx, cfg.Region); err == nil {
			if exists, err := sc.SecretExists(ctx, info.SecretID); err == nil {
				status.SecretExists = &exists
			}
		}
	}

	if cfg.Transfers.TrackingTable != "" {
		counts, err := collectTransferCounts(ctx, cfg)
		if err != nil {
			// Connector state is still useful when the table is unreachable.
			log.Printf("warning: failed to read tracking table: %v", err)
		} else {
			status.Transfers = counts
		}
	}

	return status, nil
}

func collectTransferCounts(ctx context.Context, cfg *config.Config) (*TransferCounts, error) {
	store, err := newTrackingStore(ctx, cfg.Region, cfg.Transfers.TrackingTable)
	if err != nil {
		return nil, err
	}

	counts := &TransferCounts{}
	for _, st := range []struct {
		status string
		dst    *int
	}{
		{dynamo.StatusPending, &counts.Pending},
		{dynamo.StatusInProgress, &counts.InProgress},
		{dynamo.StatusCompleted, &counts.Completed},
	} {
		records, err := store.ListByStatus(ctx, st.status)
		if err != nil {
			return nil, err
		}
		*st.dst = len(records)
	}
	return counts, nil
}

func printStatusJSON(status *ConnectorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printStatusPlain(status *ConnectorStatus) {
	fmt.Printf("connector: %s\n", status.ConnectorID)
	fmt.Printf("url:       %s\n", status.URL)
	if status.Region != "" {
		fmt.Printf("region:    %s\n", status.Region)
	}
	fmt.Printf("trusted host keys: %d\n", len(status.TrustedHostKeys))
	for _, k := range status.TrustedHostKeys {
		fmt.Printf("  %s\n", k)
	}
	if len(status.EgressIPs) > 0 {
		fmt.Printf("egress IPs: %v\n", status.EgressIPs)
	}
	if status.SecretID != "" {
		fmt.Printf("secret:    %s%s\n", status.SecretID, secretSuffix(status.SecretExists))
	}
	if status.Transfers != nil {
		fmt.Printf("transfers: pending=%d in_progress=%d completed=%d\n",
			status.Transfers.Pending, status.Transfers.InProgress, status.Transfers.Completed)
	}
}

func secretSuffix(exists *bool) string {
	switch {
	case exists == nil:
		return ""
	case *exists:
		return " (exists)"
	default:
		return " (missing)"
	}
}
