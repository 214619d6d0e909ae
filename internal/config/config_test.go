package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.PatientsBaseURL)
	assert.Equal(t, "http://localhost:8080/graphql", cfg.API.GraphQLURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.UI.ShowLoading)
	assert.False(t, cfg.UI.ShowErrors)
	assert.False(t, cfg.UI.MemoizeDetails)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.OTel.Endpoint)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLINICDASH_API_GRAPHQL_URL", "https://gql.example.com/")
	t.Setenv("CLINICDASH_API_TIMEOUT", "3s")
	t.Setenv("CLINICDASH_UI_SHOW_ERRORS", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://gql.example.com/", cfg.API.GraphQLURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.UI.ShowErrors)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinicdash.yaml")
	content := "api:\n  patients_base_url: https://rest.example.com\nui:\n  memoize_details: true\n  greeting: Ops\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://rest.example.com", cfg.API.PatientsBaseURL)
	assert.True(t, cfg.UI.MemoizeDetails)
	assert.Equal(t, "Ops", cfg.UI.Greeting)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load(New(), "")
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty url", func(c *Config) { c.API.PatientsBaseURL = "" }, "api.patients_base_url"},
		{"bad scheme", func(c *Config) { c.API.GraphQLURL = "ftp://x" }, "api.graphql_url"},
		{"missing host", func(c *Config) { c.API.DoctorInfoBaseURL = "http://" }, "api.doctor_info_base_url"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLINICDASH_UI_GREETING=from-dotenv\n"), 0o644))
	t.Setenv("CLINICDASH_UI_GREETING", "")
	require.NoError(t, os.Unsetenv("CLINICDASH_UI_GREETING"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { _ = os.Unsetenv("CLINICDASH_UI_GREETING") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.UI.Greeting)
}
