package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a temp dir so that no
// real ~/.bikerental or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, k := range []string{"API_URL", "API_TOKEN", "TIMEOUT", "RETRIES", "LOG_FILE", "LOG_LEVEL", "THEME"} {
		t.Setenv(envPrefix+k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Zero(t, cfg.API.Retries)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://bikes.internal:8080
  timeout: 5s
  retries: 2
theme: neon
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://bikes.internal:8080", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, "neon", cfg.Theme)

	t.Setenv("BIKERENTAL_API_URL", "https://api.example.com")
	t.Setenv("BIKERENTAL_RETRIES", "0")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 0, cfg.API.Retries)
}

func TestLoadDefaultPathInHome(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, dirName), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, dirName, configFileName),
		[]byte("log:\n  file: /tmp/bikerental.log\n  level: 1\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Log{File: "/tmp/bikerental.log", Level: 1}, cfg.Log)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv(envPrefix+"API_URL"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BIKERENTAL_API_URL=http://from-dotenv:5000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(envPrefix + "API_URL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:5000", cfg.API.BaseURL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad timeout", env: map[string]string{"BIKERENTAL_TIMEOUT": "soon"}},
		{name: "bad retries", env: map[string]string{"BIKERENTAL_RETRIES": "many"}},
		{name: "negative retries", env: map[string]string{"BIKERENTAL_RETRIES": "-1"}},
		{name: "relative url", env: map[string]string{"BIKERENTAL_API_URL": "bikes"}},
		{name: "ftp url", env: map[string]string{"BIKERENTAL_API_URL": "ftp://host"}},
		{name: "broken yaml", file: "api: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = filepath.Join(dir, "c.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o644))
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
