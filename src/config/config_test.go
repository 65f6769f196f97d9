package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 8000, c.Port)
	assert.True(t, c.WriteLogs)
	assert.Equal(t, "testruns.txt", c.SummaryFile)
	assert.Equal(t, 1.10, c.Thresholds.Faster)
	assert.Equal(t, 0.95, c.Thresholds.Slower)
	assert.Equal(t, 0.5, c.Thresholds.RealSlowNew)
	assert.Equal(t, 0.7, c.Thresholds.RealSlowOriginal)
	assert.False(t, c.Admin.Enabled)
	assert.Equal(t, 8002, c.Admin.GrpcPort)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
	require.NoError(t, c.Validate())
}

func TestNewConfigMissingFileUsesDefaults(t *testing.T) {
	c, err := NewConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "benchmark-observer", c.Name)
}

func TestNewConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "port: 9000\nwrite_logs: false\nstorage:\n  db_type: none\nthresholds:\n  faster: 1.2\n  slower: 0.9\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, c.Port)
	assert.False(t, c.WriteLogs)
	assert.Equal(t, "none", c.Storage.DBType)
	assert.Equal(t, 1.2, c.Thresholds.Faster)
	// untouched keys keep their defaults
	assert.Equal(t, 0.5, c.Thresholds.RealSlowNew)
	assert.Equal(t, "testruns.txt", c.SummaryFile)
}

func TestNewConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [oops"), 0o644))

	_, err := NewConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Port = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Storage.DBType = "postgres"
	assert.Error(t, c.Validate())
	c.Storage.DBConnectionString = "postgres://localhost/bench?sslmode=disable"
	assert.NoError(t, c.Validate())

	c = Default()
	c.Storage.DBType = "mongo"
	assert.Error(t, c.Validate())

	c = Default()
	c.Thresholds.Slower = 2
	assert.Error(t, c.Validate())

	c = Default()
	c.Admin.Enabled = true
	c.Admin.Host = c.Host
	c.Admin.Port = c.Port
	assert.Error(t, c.Validate())

	c = Default()
	c.MaxBodyBytes = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.Admin.Enabled = true
	c.Admin.GrpcPort = c.Admin.Port
	assert.Error(t, c.Validate())
	c.Admin.GrpcPort = 0
	assert.NoError(t, c.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Port = 8123
	require.NoError(t, c.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8123, loaded.Port)
	assert.Equal(t, c.Storage, loaded.Storage)
}
