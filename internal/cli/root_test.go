// Package cli tests root command wiring and global flags for relnote.
package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/raveheart1/relnote/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "relnote", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
	}{
		"config flag exists":  {flagName: "config"},
		"debug flag exists":   {flagName: "debug"},
		"verbose flag exists": {flagName: "verbose"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"show", "check", "sync", "extract", "import",
		"init", "add", "release", "generate", "watch", "version",
	} {
		assert.True(t, names[want], "Root command should have %q subcommand", want)
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}

	assert.True(t, groupIDs[GroupViewing], "Should have viewing group")
	assert.True(t, groupIDs[GroupAuthoring], "Should have authoring group")
	assert.True(t, groupIDs[GroupAutomation], "Should have automation group")
	assert.True(t, groupIDs[GroupSetup], "Should have setup group")
}

func TestRootCmd_CanShowHelp(t *testing.T) {
	t.Parallel()

	// Fresh command to avoid mutating global state
	cmd := &cobra.Command{
		Use:   "relnote",
		Short: "Test command",
	}
	cmd.SetArgs([]string{"--help"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Test command")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitTimeout, ExitCode(NewExitError(ExitTimeout)))
	assert.Equal(t, ExitValidationFailed, ExitCode(assert.AnError))
	assert.Equal(t, ExitInvalidArguments, ExitCode(apperrors.NewArgumentError("bad")))
	assert.Equal(t, ExitMissingPrerequisites, ExitCode(apperrors.NewPrerequisiteError("missing")))
}
