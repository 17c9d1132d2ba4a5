// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scanbrief/internal/config"
	"github.com/xkilldash9x/scanbrief/internal/observability"
)

// executeRoot runs a fresh root command and returns its combined output.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "scanbrief version "+Version)
}

func TestRootCmd_NoArgs(t *testing.T) {
	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Scanbrief turns SARIF scan results into a security report.")
	assert.Contains(t, out, "report")
}

func TestRootCmd_InvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "scanbrief.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: pdf\n"), 0o644))

	_, err := executeRoot(t, "--config", cfgPath, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load or validate config")
}

func TestRootCmd_UnreadableConfigFile(t *testing.T) {
	_, err := executeRoot(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize configuration")
}

func TestInitializeConfig_EnvOverride(t *testing.T) {
	t.Setenv("SCANBRIEF_OUTPUT_FORMAT", "yaml")
	t.Setenv("SCANBRIEF_NARRATIVE_FILESYSTEM_HIGH", "2")

	v := viper.New()
	config.SetDefaults(v)
	v.SetConfigName("a-config-file-that-does-not-exist")
	require.NoError(t, initializeConfig(v, ""))

	cfg, err := config.NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Narrative.Filesystem.High)
}

func TestGetConfigFromContext_Missing(t *testing.T) {
	_, err := getConfigFromContext(context.Background())
	assert.Error(t, err)
}
