package e2e

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harborworks/dockhand/tests/e2e/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemediate_RoundTrip(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	original := "FROM node:latest\nUSER root\nRUN npm ci\nRUN npm run build\nEXPOSE 3000\nCMD [\"node\", \"server.js\"]\n"
	testutil.WriteProjectFile(t, root, "dockerfile", original)

	stdout, stderr, exitErr := testutil.RunCLI(t,
		[]string{"remediate", "--path", root}, nil, 10*time.Second)

	require.Nil(t, exitErr)
	testutil.AssertLogContains(t, stdout+stderr, []string{"Dockerfile rewritten", "Remediation complete"})

	backup, err := os.ReadFile(filepath.Join(root, "dockerfile.bak"))
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	rewritten, err := os.ReadFile(filepath.Join(root, "dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "FROM node:stable")
	assert.Contains(t, string(rewritten), "USER appuser")
	assert.Contains(t, string(rewritten), "RUN npm ci && npm run build")
	assert.Contains(t, string(rewritten), "HEALTHCHECK CMD curl --fail http://localhost || exit 1")
	assert.Contains(t, string(rewritten), "EXPOSE 3000")
}

func TestRemediate_CustomUserAndTag(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	testutil.WriteProjectFile(t, root, "dockerfile", "FROM debian:latest\nUSER root\n")

	_, _, exitErr := testutil.RunCLI(t,
		[]string{"remediate", "--path", root, "--user", "svc", "--base-tag", "bookworm"}, nil, 10*time.Second)
	require.Nil(t, exitErr)

	rewritten, err := os.ReadFile(filepath.Join(root, "dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "FROM debian:bookworm")
	assert.Contains(t, string(rewritten), "USER svc")
}

func TestRemediate_NoDockerfiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	testutil.WriteProjectFile(t, root, "README.md", "nothing to fix\n")

	stdout, stderr, exitErr := testutil.RunCLI(t,
		[]string{"remediate", "--path", root}, nil, 10*time.Second)

	assert.Nil(t, exitErr)
	testutil.AssertLogContains(t, stdout+stderr, []string{"No Dockerfiles found"})
}
