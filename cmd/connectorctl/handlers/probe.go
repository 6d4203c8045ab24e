package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// Probe issues a single test-connection call and reports the result.
//
// A probe that ran and failed is a normal outcome, not an error: the failure
// detail (and, when the service surfaced one, the remote host key) is
// printed. Errors are reserved for configuration and API-call failures.
func Probe(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	res, err := client.TestConnection(ctx, cfg.Connector.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printProbeJSON(cfg.Connector.ID, res)
	}

	if isInteractiveTTY() {
		fmt.Println(renderProbe(cfg.Connector.ID, res))
		return nil
	}

	printProbePlain(cfg.Connector.ID, res)
	return nil
}

// probeOutput is the JSON shape of a probe result.
type probeOutput struct {
	ConnectorID string `json:"connectorId"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	HostKey     string `json:"hostKey,omitempty"`
}

func printProbeJSON(connectorID string, res *transfer.ProbeResult) error {
	data, err := json.MarshalIndent(probeOutput{
		ConnectorID: connectorID,
		Status:      string(res.Status),
		Message:     res.Message,
		HostKey:     res.HostKey,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal probe result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printProbePlain(connectorID string, res *transfer.ProbeResult) {
	fmt.Printf("connector: %s\n", connectorID)
	fmt.Printf("status:    %s\n", res.Status)
	if res.Message != "" {
		fmt.Printf("message:   %s\n", res.Message)
	}
	if res.HostKey != "" {
		fmt.Printf("host key:  %s\n", res.HostKey)
	}
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
