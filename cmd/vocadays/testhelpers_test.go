package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// execute runs the root command with cfgPath and returns what it printed.
func execute(t *testing.T, cfgPath, input string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { configFile = "" })

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--config", cfgPath, "--env-file", ""}, args...))
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}
