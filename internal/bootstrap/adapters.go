package bootstrap

import (
	"context"
	"fmt"

	"github.com/connectorctl/connectorctl/internal/hostkey"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// TransferProber adapts a transfer.ConnectorManager to the Prober interface.
type TransferProber struct {
	Connectors transfer.ConnectorManager
}

func (p *TransferProber) Probe(ctx context.Context, connectorID string) (*transfer.ProbeResult, error) {
	return p.Connectors.TestConnection(ctx, connectorID)
}

// ScanDiscoverer adapts a hostkey.Scanner to the Discoverer interface.
type ScanDiscoverer struct {
	Scanner *hostkey.Scanner
}

func (d *ScanDiscoverer) Discover(ctx context.Context, endpointURL string) (hostkey.ScanResult, error) {
	return d.Scanner.Scan(ctx, endpointURL)
}

// ConnectorReconciler applies a discovered host key to a connector by
// re-reading its current configuration and replacing the trusted host key
// set with exactly the discovered key. Re-applying the same key is a remote
// no-op.
type ConnectorReconciler struct {
	Connectors transfer.ConnectorManager
}

func (r *ConnectorReconciler) ApplyHostKey(ctx context.Context, connectorID, key string) error {
	info, err := r.Connectors.DescribeConnector(ctx, connectorID)
	if err != nil {
		return fmt.Errorf("failed to read connector %s before update: %w", connectorID, err)
	}
	if err := r.Connectors.UpdateTrustedHostKeys(ctx, info, []string{key}); err != nil {
		return err
	}
	return nil
}
