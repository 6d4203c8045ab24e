package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
region: eu-central-1
connector:
  id: c-0123456789abcdef0
  url: sftp://sftp.partner.example:2222
  secretId: sftp-partner-creds
bootstrap:
  maxAttempts: 5
  retryDelaySeconds: 15
  transientPatterns:
    - "Cannot access secret manager"
transfers:
  bucket: partner-landing
  trackingTable: partner-files
  retrievePrefix: inbound
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "c-0123456789abcdef0", cfg.Connector.ID)
	assert.Equal(t, "sftp://sftp.partner.example:2222", cfg.Connector.URL)
	assert.Equal(t, "sftp-partner-creds", cfg.Connector.SecretID)
	assert.Equal(t, 5, cfg.Bootstrap.Attempts())
	assert.Equal(t, []string{"Cannot access secret manager"}, cfg.Bootstrap.TransientPatterns)
	assert.Equal(t, "partner-landing", cfg.Transfers.Bucket)
	assert.Equal(t, "inbound", cfg.Transfers.RetrievePrefix)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("connector: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromBytes_FailsValidation(t *testing.T) {
	_, err := LoadFromBytes([]byte("connector:\n  id: c-0123456789abcdef0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector.url is required")
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "c-0123456789abcdef0", cfg.Connector.ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFilename), []byte(sampleYAML), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(sub))

	found, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFilename, filepath.Base(found))
}
