// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scientist-cli/internal/config"
)

// writeConfig writes a config file using dir as the templates directory.
func writeConfig(t *testing.T, dir string, trendEnabled bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf(`templates:
  dir: %q
  names: [vector_regex]
trend:
  enabled: %t
logger:
  level: error
`, dir, trendEnabled)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func executeRoot(t *testing.T, provider storeProvider, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { cfgFile = "" })
	root := newRootCmd(provider)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootSolve(t *testing.T) {
	path := writeConfig(t, writeTemplates(t), false)
	out, err := executeRoot(t, &mockStoreProvider{}, "--config", path, "solve", "-q", magnitudeQuestion)
	require.NoError(t, err)
	assert.Equal(t, "5 units\n", out)
}

func TestRootTemplates(t *testing.T) {
	path := writeConfig(t, writeTemplates(t), true)
	out, err := executeRoot(t, &mockStoreProvider{}, "--config", path, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "vector_regex")
	assert.Contains(t, out, "regex_group=1")
	assert.Contains(t, out, "trend")
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  concurrency: 0\n"), 0o600))
	_, err := executeRoot(t, &mockStoreProvider{}, "--config", path, "templates")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load or validate config")
}

func TestRootVersion(t *testing.T) {
	out, err := executeRoot(t, &mockStoreProvider{}, "--version")
	require.NoError(t, err)
	assert.Equal(t, "scientist-cli version "+Version+"\n", out)
}

func TestGetConfigFromContext(t *testing.T) {
	_, err := getConfigFromContext(context.Background())
	assert.Error(t, err)

	cfg := config.NewDefaultConfig()
	got, err := getConfigFromContext(context.WithValue(context.Background(), configKey, cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestBuildDispatcher(t *testing.T) {
	cfg := testConfig(t)
	d, err := buildDispatcher(cfg, nopLogger())
	require.NoError(t, err)
	require.Len(t, d.Answerers(), 2)
	assert.Equal(t, "vector_regex", d.Answerers()[0].Name())
	assert.Equal(t, "trend", d.Answerers()[1].Name())

	cfg.TrendCfg.Enabled = false
	d, err = buildDispatcher(cfg, nopLogger())
	require.NoError(t, err)
	assert.Len(t, d.Answerers(), 1)
}
