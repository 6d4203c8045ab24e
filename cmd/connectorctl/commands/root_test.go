package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "connectorctl", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "bootstrap", "probe", "status", "retrieve", "send", "check", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestBootstrapCommand(t *testing.T) {
	cmd := Bootstrap()

	require.NotNil(t, cmd)
	assert.Equal(t, "bootstrap", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestProbeCommand(t *testing.T) {
	cmd := Probe()

	assert.Equal(t, "probe", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	require.NotNil(t, cmd.Flags().Lookup("json"))
}

func TestStatusCommand(t *testing.T) {
	cmd := Status()

	assert.Equal(t, "status", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("json"))
	require.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestInitCommand(t *testing.T) {
	cmd := Init()

	assert.Equal(t, "init", cmd.Use)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "connectorctl.yaml", output.DefValue)

	advanced := cmd.Flags().Lookup("advanced")
	require.NotNil(t, advanced)
	assert.Equal(t, "a", advanced.Shorthand)
}

func TestRetrieveCommand(t *testing.T) {
	cmd := Retrieve()

	assert.Equal(t, "retrieve", cmd.Use)
	enqueue := cmd.Flags().Lookup("enqueue")
	require.NotNil(t, enqueue)
	assert.Equal(t, "e", enqueue.Shorthand)
	remoteDir := cmd.Flags().Lookup("remote-dir")
	require.NotNil(t, remoteDir)
	assert.Equal(t, "d", remoteDir.Shorthand)
}

func TestRetrieveCommand_RemoteDirExcludesEnqueue(t *testing.T) {
	cmd := Retrieve()
	cmd.SetArgs([]string{"-d", "/uploads", "-e", "/outbox/a.csv"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestSendCommand(t *testing.T) {
	cmd := Send()

	assert.Equal(t, "send", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("key"))
	require.NotNil(t, cmd.Flags().Lookup("prefix"))
}

func TestSendCommand_RequiresExactlyOneTarget(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "neither", args: []string{}},
		{name: "both", args: []string{"-k", "a.csv", "-p", "outbox/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Send()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of --key or --prefix")
		})
	}
}

func TestCheckCommand(t *testing.T) {
	cmd := Check()

	assert.Equal(t, "check", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestVersionCommand(t *testing.T) {
	cmd := Version()

	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Run)
}

func TestCompletionCommand(t *testing.T) {
	cmd := Completion()

	assert.Contains(t, cmd.Use, "completion")
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}
