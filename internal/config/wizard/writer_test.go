package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorctl/connectorctl/internal/config"
)

func TestWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "connectorctl.yaml")

	cfg := &config.Config{
		Region: "eu-central-1",
		Connector: config.Connector{
			ID:  "c-0123456789abcdef0",
			URL: "sftp://sftp.partner.example",
		},
	}

	err := WriteConfig(cfg, outputPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	assert.Contains(t, string(content), "# connectorctl configuration")
	assert.Contains(t, string(content), "id: c-0123456789abcdef0")
	assert.Contains(t, string(content), "region: eu-central-1")
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "connectorctl.yaml")

	cfg := &config.Config{
		Region: "us-east-1",
		Connector: config.Connector{
			ID:       "c-0123456789abcdef0",
			URL:      "sftp://sftp.partner.example:2222",
			SecretID: "sftp-creds",
		},
		Transfers: config.Transfers{
			Bucket:        "partner-landing",
			TrackingTable: "partner-files",
		},
	}

	require.NoError(t, WriteConfig(cfg, outputPath))

	loaded, err := config.Load(outputPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Connector, loaded.Connector)
	assert.Equal(t, cfg.Transfers.Bucket, loaded.Transfers.Bucket)
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "exists.yaml")

	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwrite_Injected(t *testing.T) {
	orig := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = orig })

	confirmOverwrite = func(path string) (bool, error) { return true, nil }

	ok, err := ConfirmOverwrite("whatever.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
}
