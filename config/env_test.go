package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, loadFromFiles(
		[]string{filepath.Join(dir, "missing.yaml")},
		filepath.Join(dir, ".env"),
	))

	assert.Equal(t, defaultAppName, get("APP_NAME", ""))
	assert.Equal(t, defaultAppEnv, get("APP_ENV", ""))
	assert.Equal(t, defaultLogLevel, get("LOG_LEVEL", ""))
}

func TestLoadFromFiles_YAMLThenDotEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "app.yaml", "app_name: orders\napp_env: staging\nlog_level: info\n")
	envPath := writeFile(t, dir, ".env", "# comment\nAPP_ENV=\"production\"\nEXTRA=1\n")

	require.NoError(t, loadFromFiles([]string{yamlPath}, envPath))

	assert.Equal(t, "orders", get("APP_NAME", ""))
	assert.Equal(t, "production", get("APP_ENV", ""), ".env must win over the config file")
	assert.Equal(t, "info", get("LOG_LEVEL", ""))
	assert.Equal(t, "1", get("EXTRA", ""))
}

func TestLoadFromFiles_JSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_name": "billing", "debug": true}`)

	require.NoError(t, loadFromFiles([]string{jsonPath}, filepath.Join(dir, ".env")))

	assert.Equal(t, "billing", get("APP_NAME", ""))
	assert.Equal(t, "true", get("DEBUG", ""))
}

func TestLoadFromFiles_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "LOG_LEVEL=warn\n")
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, loadFromFiles(nil, envPath))

	assert.Equal(t, "error", get("LOG_LEVEL", ""))
}

func TestLoadFromFiles_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "app.yaml", "app_name: [unterminated\n")

	err := loadFromFiles([]string{bad}, filepath.Join(dir, ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestLoad_ReportsMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "app.yaml", "app_name: [unterminated\n")

	paths := configFiles
	configFiles = []string{bad}
	loadOnce, loadErr = sync.Once{}, nil
	t.Cleanup(func() {
		configFiles = paths
		loadOnce, loadErr = sync.Once{}, nil
	})

	err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Equal(t, err, Load(), "the error is sticky")
}
