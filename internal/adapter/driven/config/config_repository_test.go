package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
profile = "prod"
days = 7
json = true
tag = ["Team=DevOps"]
report_name = "monthly"
report_type = ["csv", "pdf"]
dir = "/tmp/reports"
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, 7, cfg.Days)
	assert.True(t, cfg.JSON)
	assert.Equal(t, []string{"Team=DevOps"}, cfg.Tag)
	assert.Equal(t, "monthly", cfg.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
profile: staging
days: 14
tag:
  - Env=staging
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Profile)
	assert.Equal(t, 14, cfg.Days)
	assert.False(t, cfg.JSON)
	assert.Equal(t, []string{"Env=staging"}, cfg.Tag)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"profile": "dev", "days": 3, "json": true}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Profile)
	assert.Equal(t, 3, cfg.Days)
	assert.True(t, cfg.JSON)
}

func TestLoadConfigFile_UnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "config.ini", "profile=prod")

	_, err := NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigFile_Directory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.Mkdir(dir, 0755))

	_, err := NewConfigRepository().LoadConfigFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
