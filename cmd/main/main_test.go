package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"benchmark-observer/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "default.yaml")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "created")

	cfg, err := config.NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "testruns.txt", cfg.SummaryFile)

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "exists")
}

func TestServeOptionsApply(t *testing.T) {
	cfg := config.Default()
	serveOptions{host: "127.0.0.1", port: 9000, logDir: "/tmp/runs", noLogs: true, withAdmin: true}.apply(cfg)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/runs", cfg.LogDir)
	assert.False(t, cfg.WriteLogs)
	assert.True(t, cfg.Admin.Enabled)

	// zero values keep the config
	cfg = config.Default()
	serveOptions{}.apply(cfg)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.WriteLogs)
}
