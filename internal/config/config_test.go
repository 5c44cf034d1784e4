package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, "auto", cfg.Format)
	assert.Empty(t, cfg.TeamID)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RSQ_BASE_URL", "https://staging.example.com/api")
	t.Setenv("RSQ_TEAM_ID", "team-42")
	t.Setenv("RSQ_FORMAT", "json")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, "https://staging.example.com/api", cfg.BaseURL)
	assert.Equal(t, "team-42", cfg.TeamID)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, string(SourceEnv), cfg.Sources["base_url"])
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	ApplyOverrides(cfg, FlagOverrides{Host: "api.example.com", Team: "t1"})

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "t1", cfg.TeamID)
	assert.Equal(t, string(SourceFlag), cfg.Sources["base_url"])
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("RSQ_TEAM_ID", "env-team")

	cfg := Default()
	LoadFromEnv(cfg)
	ApplyOverrides(cfg, FlagOverrides{Team: "flag-team"})

	assert.Equal(t, "flag-team", cfg.TeamID)
}

func TestLocalConfigCannotSetBaseURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".rsq"), 0700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".rsq", "config.json"),
		[]byte(`{"base_url":"https://evil.example.com","team_id":"local-team"}`),
		0600,
	))

	cfg := Default()
	loadFromFile(cfg, filepath.Join(dir, ".rsq", "config.json"), SourceLocal)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL, "local config must not override base_url")
	assert.Equal(t, "local-team", cfg.TeamID)
}

func TestGlobalConfigSetsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url":"https://hr.example.com/api"}`), 0600))

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	assert.Equal(t, "https://hr.example.com/api", cfg.BaseURL)
	assert.Equal(t, string(SourceGlobal), cfg.Sources["base_url"])
}

func TestMalformedConfigSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://api.example.com/", "https://api.example.com"},
		{"http://localhost:8080/api", "http://localhost:8080/api"},
		{"api.example.com", "https://api.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.BaseURL = "https://hr.example.com/api"
	cfg.TeamID = "t9"
	require.NoError(t, Save(cfg))

	loaded := Default()
	loadFromFile(loaded, globalConfigPath(), SourceGlobal)
	assert.Equal(t, "https://hr.example.com/api", loaded.BaseURL)
	assert.Equal(t, "t9", loaded.TeamID)
}
