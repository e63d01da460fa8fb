package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeViper_Defaults(t *testing.T) {
	globalViper = nil

	t.Setenv("DOCKHAND_NO_CONFIG", "1")
	_, err := LoadConfig("")
	require.NoError(t, err)

	// Check defaults are set
	assert.Equal(t, "appuser", GetString("remediation.user"))
	assert.Equal(t, "stable", GetString("remediation.base_tag"))
	assert.Equal(t, "CMD curl --fail http://localhost || exit 1", GetString("remediation.healthcheck"))
	assert.Equal(t, "1MiB", GetString("analysis.max_manifest_size"))
}

func TestInitializeViper_WithYAML(t *testing.T) {
	globalViper = nil

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
remediation:
  user: svc
  base_tag: bookworm

analysis:
  max_manifest_size: 4MiB
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o600))

	err := InitializeViper(configFile)
	require.NoError(t, err)

	assert.Equal(t, "svc", GetString("remediation.user"))
	assert.Equal(t, "bookworm", GetString("remediation.base_tag"))
	assert.Equal(t, "4MiB", GetString("analysis.max_manifest_size"))
	// untouched keys keep their defaults
	assert.Equal(t, "CMD curl --fail http://localhost || exit 1", GetString("remediation.healthcheck"))
}

func TestUnmarshalConfig(t *testing.T) {
	globalViper = nil

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "dockhand.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remediation:\n  user: deploy\n"), 0o600))

	require.NoError(t, InitializeViper(configFile))

	cfg, err := UnmarshalConfig()
	require.NoError(t, err)
	assert.Equal(t, "deploy", cfg.Remediation.User)
	assert.Equal(t, "stable", cfg.Remediation.BaseTag)
}

func TestGetStringValue_ConfigFallback(t *testing.T) {
	globalConfig = &Config{
		Remediation: RemediationConfig{User: "fromconfig"},
	}
	defer func() { globalConfig = nil }()

	cmd := newTestCommand()
	val := GetStringValue(cmd, "user", func(c *Config) string {
		return c.Remediation.User
	})
	assert.Equal(t, "fromconfig", val)
}

func TestGetStringValue_FlagWins(t *testing.T) {
	globalConfig = &Config{
		Remediation: RemediationConfig{User: "fromconfig"},
	}
	defer func() { globalConfig = nil }()

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("user", "fromflag"))

	val := GetStringValue(cmd, "user", func(c *Config) string {
		return c.Remediation.User
	})
	assert.Equal(t, "fromflag", val)
}
