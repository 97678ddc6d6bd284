package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantMessage  string
	}{
		"argument error": {
			err:          NewArgumentError("bad flag", "use --help"),
			wantCategory: Argument,
			wantMessage:  "bad flag",
		},
		"config error": {
			err:          NewConfigError("missing setting"),
			wantCategory: Configuration,
			wantMessage:  "missing setting",
		},
		"prerequisite error": {
			err:          NewPrerequisiteError("file missing"),
			wantCategory: Prerequisite,
			wantMessage:  "file missing",
		},
		"runtime error": {
			err:          NewRuntimeError("it broke"),
			wantCategory: Runtime,
			wantMessage:  "it broke",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantCategory, tc.err.Category)
			assert.Equal(t, tc.wantMessage, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, Wrap(nil, Runtime))
		assert.Nil(t, WrapWithMessage(nil, Runtime, "context"))
	})

	t.Run("wrap preserves message", func(t *testing.T) {
		t.Parallel()
		err := Wrap(fmt.Errorf("boom"), Runtime, "try again")
		require.NotNil(t, err)
		assert.Equal(t, "boom", err.Message)
		assert.Equal(t, []string{"try again"}, err.Remediation)
	})

	t.Run("wrap with message prefixes context", func(t *testing.T) {
		t.Parallel()
		err := WrapWithMessage(fmt.Errorf("boom"), Configuration, "loading config")
		require.NotNil(t, err)
		assert.Equal(t, "loading config: boom", err.Message)
	})

	t.Run("wrapped cause stays in the chain", func(t *testing.T) {
		t.Parallel()
		cause := fmt.Errorf("boom")
		err := WrapWithMessage(cause, Runtime, "fetching")
		assert.ErrorIs(t, err, cause)
	})
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, AsCLIError(fmt.Errorf("boom")))
	})

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		err := NewRuntimeError("it broke")
		assert.Same(t, err, AsCLIError(err))
	})

	t.Run("behind fmt.Errorf wrapping", func(t *testing.T) {
		t.Parallel()
		inner := NewPrerequisiteError("file missing")
		err := fmt.Errorf("running check: %w", inner)
		assert.Same(t, inner, AsCLIError(err))
	})
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage(
		"invalid version format: abc",
		"relnote release <MAJOR.MINOR.PATCH>",
		"Versions must follow semantic versioning (e.g., 0.9.1)",
	)

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Argument Error]: invalid version format: abc")
	assert.Contains(t, out, "Usage: relnote release <MAJOR.MINOR.PATCH>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• Versions must follow semantic versioning")
}

func TestMessageTemplates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantContains string
	}{
		"missing changelog": {
			err:          MissingChangelogFile("CHANGELOG.yaml"),
			wantCategory: Prerequisite,
			wantContains: "changelog not found: CHANGELOG.yaml",
		},
		"release not found": {
			err:          ReleaseNotFound("9.9.9"),
			wantCategory: Argument,
			wantContains: "release not found: 9.9.9",
		},
		"dev entry exists": {
			err:          DevelopmentEntryExists("0.3.0-dev"),
			wantCategory: Argument,
			wantContains: "0.3.0-dev",
		},
		"github token missing": {
			err:          GitHubTokenMissing("GITHUB_TOKEN"),
			wantCategory: Configuration,
			wantContains: "GITHUB_TOKEN",
		},
		"remote fetch": {
			err:          RemoteFetchError("https://example.com/changelog.yaml", fmt.Errorf("timeout")),
			wantCategory: Runtime,
			wantContains: "timeout",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantCategory, tc.err.Category)
			assert.Contains(t, tc.err.Message, tc.wantContains)
		})
	}
}
