package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
	"github.com/connectorctl/connectorctl/internal/transfers"
)

func TestCollectStatus(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := transfersTestConfig()
	cfg.Connector.SecretID = "sftp-creds"

	newTransferClient = func(_ context.Context, _ string) (transfer.Client, error) {
		return &fakeTransferClient{info: &transfer.ConnectorInfo{
			ID:              cfg.Connector.ID,
			URL:             cfg.Connector.URL,
			SecretID:        "sftp-creds",
			TrustedHostKeys: []string{"ssh-ed25519 AAAA"},
			EgressIPs:       []string{"198.51.100.7"},
		}}, nil
	}
	newSecretsClient = func(_ context.Context, _ string) (secretChecker, error) {
		return &fakeSecrets{exists: true}, nil
	}
	newTrackingStore = func(_ context.Context, _, _ string) (transfers.Store, error) {
		return newFakeStore(
			dynamo.FileRecord{FilePath: "/a", Status: dynamo.StatusPending},
			dynamo.FileRecord{FilePath: "/b", Status: dynamo.StatusInProgress},
			dynamo.FileRecord{FilePath: "/c", Status: dynamo.StatusCompleted},
			dynamo.FileRecord{FilePath: "/d", Status: dynamo.StatusCompleted},
		), nil
	}

	status, err := collectStatus(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.Connector.ID, status.ConnectorID)
	assert.Equal(t, []string{"ssh-ed25519 AAAA"}, status.TrustedHostKeys)
	assert.Equal(t, []string{"198.51.100.7"}, status.EgressIPs)
	require.NotNil(t, status.SecretExists)
	assert.True(t, *status.SecretExists)
	require.NotNil(t, status.Transfers)
	assert.Equal(t, 1, status.Transfers.Pending)
	assert.Equal(t, 1, status.Transfers.InProgress)
	assert.Equal(t, 2, status.Transfers.Completed)
}

func TestCollectStatus_NoTrackingTable(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	newTransferClient = func(_ context.Context, _ string) (transfer.Client, error) {
		return &fakeTransferClient{info: &transfer.ConnectorInfo{ID: cfg.Connector.ID, URL: cfg.Connector.URL}}, nil
	}

	status, err := collectStatus(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, status.Transfers)
	assert.Nil(t, status.SecretExists)
}

func TestStatusJSONShape(t *testing.T) {
	status := &ConnectorStatus{
		ConnectorID:     "c-0123456789abcdef0",
		URL:             "sftp://sftp.example.com",
		TrustedHostKeys: []string{},
		Transfers:       &TransferCounts{Pending: 2},
	}

	output := captureOutput(func() {
		assert.NoError(t, printStatusJSON(status))
	})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, "c-0123456789abcdef0", decoded["connectorId"])
	assert.NotContains(t, decoded, "secretId")
}

func TestRenderStatus_NoTrustedKeys(t *testing.T) {
	out := renderStatus(&ConnectorStatus{
		ConnectorID: "c-0123456789abcdef0",
		URL:         "sftp://sftp.example.com",
	})

	assert.Contains(t, out, "no trusted host keys")
	assert.Contains(t, out, "connectorctl bootstrap")
}

func TestRenderStatus_WithKeysAndTransfers(t *testing.T) {
	exists := false
	out := renderStatus(&ConnectorStatus{
		ConnectorID:     "c-0123456789abcdef0",
		URL:             "sftp://sftp.example.com",
		TrustedHostKeys: []string{"ssh-ed25519 AAAA"},
		SecretID:        "sftp-creds",
		SecretExists:    &exists,
		Transfers:       &TransferCounts{Pending: 1, InProgress: 2, Completed: 3},
	})

	assert.Contains(t, out, "ssh-ed25519 AAAA")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "Pending:     1")
	assert.Contains(t, out, "Completed:   3")
}

func TestRenderProbe(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		out := renderProbe("c-0123456789abcdef0", &transfer.ProbeResult{Status: transfer.ProbeOK})
		assert.Contains(t, out, "connection OK")
	})

	t.Run("error with host key", func(t *testing.T) {
		out := renderProbe("c-0123456789abcdef0", &transfer.ProbeResult{
			Status:  transfer.ProbeError,
			Message: "Cannot validate host key",
			HostKey: "ssh-rsa AAAA",
		})
		assert.Contains(t, out, "connection ERROR")
		assert.Contains(t, out, "Cannot validate host key")
		assert.Contains(t, out, "ssh-rsa AAAA")
	})
}

func TestTruncateKey(t *testing.T) {
	short := "ssh-ed25519 AAAA"
	assert.Equal(t, short, truncateKey(short))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'A'
	}
	got := truncateKey(string(long))
	assert.Len(t, got, 63)
	assert.Contains(t, got, "...")
}

func TestProbeJSON(t *testing.T) {
	output := captureOutput(func() {
		assert.NoError(t, printProbeJSON("c-0123456789abcdef0", &transfer.ProbeResult{
			Status:  transfer.ProbeError,
			Message: "refused",
		}))
	})

	var decoded probeOutput
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, "ERROR", decoded.Status)
	assert.Equal(t, "refused", decoded.Message)
}

func TestLoadConfig_FindsDefault(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, error) { return "found.yaml", nil }
	loadConfigFile = func(path string) (*config.Config, error) {
		assert.Equal(t, "found.yaml", path)
		return testConfig(), nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "c-0123456789abcdef0", cfg.Connector.ID)
}
