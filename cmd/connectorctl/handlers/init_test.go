package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/config/wizard"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := wizardFileExists
	origConfirmOverwrite := wizardConfirmOverwrite
	origRunWizard := wizardRunWizard
	origBuildConfig := wizardBuildConfig
	origWriteConfig := wizardWriteConfig

	t.Cleanup(func() {
		wizardFileExists = origFileExists
		wizardConfirmOverwrite = origConfirmOverwrite
		wizardRunWizard = origRunWizard
		wizardBuildConfig = origBuildConfig
		wizardWriteConfig = origWriteConfig
	})
}

func wizardResult() *wizard.WizardResult {
	return &wizard.WizardResult{
		ConnectorID: "c-0123456789abcdef0",
		EndpointURL: "sftp://sftp.partner.example",
		Region:      "eu-central-1",
	}
}

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreInitFactories(t)

	wizardFileExists = func(_ string) bool { return false }
	wizardRunWizard = func(_ context.Context, advanced bool) (*wizard.WizardResult, error) {
		assert.False(t, advanced)
		return wizardResult(), nil
	}

	var written *config.Config
	wizardWriteConfig = func(cfg *config.Config, path string) error {
		written = cfg
		assert.Equal(t, "connectorctl.yaml", path)
		return nil
	}

	output := captureOutput(func() {
		err := Init(context.Background(), "connectorctl.yaml", false)
		assert.NoError(t, err)
	})

	require.NotNil(t, written)
	assert.Equal(t, "c-0123456789abcdef0", written.Connector.ID)
	assert.Contains(t, output, "Configuration saved!")
	assert.Contains(t, output, "connectorctl bootstrap")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreInitFactories(t)

	wizardFileExists = func(_ string) bool { return true }
	wizardConfirmOverwrite = func(_ string) (bool, error) { return false, nil }

	ran := false
	wizardRunWizard = func(_ context.Context, _ bool) (*wizard.WizardResult, error) {
		ran = true
		return wizardResult(), nil
	}

	output := captureOutput(func() {
		err := Init(context.Background(), "connectorctl.yaml", false)
		assert.NoError(t, err)
	})

	assert.False(t, ran, "wizard must not run after declined overwrite")
	assert.Contains(t, output, "Aborted")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreInitFactories(t)

	wizardFileExists = func(_ string) bool { return false }
	wizardRunWizard = func(_ context.Context, _ bool) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	captureOutput(func() {
		err := Init(context.Background(), "connectorctl.yaml", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wizard canceled")
	})
}

func TestInit_AdvancedFlagForwarded(t *testing.T) {
	saveAndRestoreInitFactories(t)

	wizardFileExists = func(_ string) bool { return false }
	wizardRunWizard = func(_ context.Context, advanced bool) (*wizard.WizardResult, error) {
		assert.True(t, advanced)
		r := wizardResult()
		r.AdvancedOptions = &wizard.AdvancedOptions{MaxAttempts: 5}
		return r, nil
	}
	wizardWriteConfig = func(_ *config.Config, _ string) error { return nil }

	captureOutput(func() {
		err := Init(context.Background(), "connectorctl.yaml", true)
		assert.NoError(t, err)
	})
}

func TestPrintInitSuccess(t *testing.T) {
	result := wizardResult()
	result.SecretID = "sftp-creds"
	result.ConfigureTransfers = true
	result.Bucket = "partner-landing"
	result.TrackingTable = "partner-files"

	output := captureOutput(func() {
		printInitSuccess("out.yaml", result)
	})

	assert.Contains(t, output, "out.yaml")
	assert.Contains(t, output, "c-0123456789abcdef0")
	assert.Contains(t, output, "sftp-creds")
	assert.Contains(t, output, "partner-landing")
	assert.Contains(t, output, "connectorctl status")
}
