package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvOrigin, EnvStore, EnvTemplate, EnvLogLevel, EnvPort} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"origin": "https://resumes.example",
		"store": "sqlite:resumes.db",
		"port": 9090,
		"log_level": "debug"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://resumes.example", cfg.Origin)
	assert.Equal(t, "sqlite:resumes.db", cfg.Store)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.Template)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"empty", Config{}, ""},
		{"relative origin", Config{Origin: "localhost:8080"}, "origin"},
		{"trailing slash", Config{Origin: "http://localhost:8080/"}, "must not end with"},
		{"negative port", Config{Port: -1}, "port"},
		{"huge port", Config{Port: 70000}, "port"},
		{"bad level", Config{LogLevel: "loud"}, "log_level"},
		{"upper level", Config{LogLevel: "DEBUG"}, ""},
		{"unknown template", Config{Template: "modern"}, "unknown template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Origin: "https://resumes.example", Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "https://resumes.example", merged.Origin)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "resumes.json", merged.Store)
	assert.Equal(t, "classic", merged.Template)
	assert.Equal(t, "info", merged.LogLevel)

	// receiver is unchanged
	assert.Empty(t, cfg.Store)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOrigin, "https://env.example")
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvPort, "7000")

	cfg := &Config{Origin: "https://file.example", Store: "file.json"}
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "https://env.example", cfg.Origin)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 7000, cfg.Port)

	t.Setenv(EnvPort, "seventy")
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"store":"memory","port":8181}`), 0644))
	t.Setenv(EnvLogLevel, "warn")

	cfg, err = Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.Origin)

	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"origin":"nope"}`), 0644))
	_, err = Load(tmpFile)
	assert.Error(t, err)
}
