package e2e

import (
	"testing"
	"time"

	"github.com/harborworks/dockhand/tests/e2e/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// TestRootCommand_Help tests the --help flag
func TestRootCommand_Help(t *testing.T) {
	t.Parallel()
	stdout, _, exitErr := testutil.RunCLI(t, []string{"--help"}, nil, 5*time.Second)

	assert.Nil(t, exitErr, "Help command should succeed")
	assert.NotEmpty(t, stdout, "Help output should not be empty")

	testutil.AssertLogContains(t, stdout, []string{
		"dockhand",
		"Usage:",
		"analyze",
		"remediate",
		"validate",
	})
}

// TestRootCommand_SubcommandHelp tests help for subcommands
func TestRootCommand_SubcommandHelp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "analyze_help",
			args:     []string{"analyze", "--help"},
			expected: []string{"smell", "--path", "--report-file"},
		},
		{
			name:     "validate_help",
			args:     []string{"validate", "--help"},
			expected: []string{"containerized", "--path"},
		},
		{
			name:     "remediate_help",
			args:     []string{"remediate", "--help"},
			expected: []string{".bak", "--user", "--base-tag"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stdout, _, exitErr := testutil.RunCLI(t, tt.args, nil, 5*time.Second)
			assert.Nil(t, exitErr)
			testutil.AssertLogContains(t, stdout, tt.expected)
		})
	}
}

// TestRootCommand_MissingPathFlag verifies commands require --path
func TestRootCommand_MissingPathFlag(t *testing.T) {
	t.Parallel()
	for _, sub := range []string{"analyze", "validate", "remediate"} {
		sub := sub
		t.Run(sub, func(t *testing.T) {
			t.Parallel()
			_, stderr, exitErr := testutil.RunCLI(t, []string{sub}, nil, 5*time.Second)
			assert.Error(t, exitErr, "missing --path should fail")
			testutil.AssertLogContains(t, stderr, []string{"path"})
		})
	}
}
