package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("UPSTREAM_BASE_URL", "https://catalog.example.com/api")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TLS_INSECURE_SKIP_VERIFY", "")
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.False(t, cfg.TLSInsecure())
}

func TestLoadRequiresUpstreamBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPSTREAM_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_BASE_URL")
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{name: "non-numeric", port: "eighty"},
		{name: "zero", port: "0"},
		{name: "too large", port: "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("PORT", tt.port)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadParsesCorsOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", " https://app.example.com , ,https://admin.example.com ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CorsOrigins)
}

func TestTLSInsecureOnlyInDevelopment(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TLS_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TLSInsecure())

	// Flippable at runtime in development.
	cfg.SetTLSInsecure(false)
	assert.False(t, cfg.TLSInsecure())
	cfg.SetTLSInsecure(true)
	assert.True(t, cfg.TLSInsecure())
}

func TestTLSInsecureIgnoredInProduction(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("TLS_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.TLSInsecure())

	cfg.SetTLSInsecure(true)
	assert.False(t, cfg.TLSInsecure(), "production never disables verification")
}

func TestConfigFileOverridesEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), "proxy.yaml")
	content := `
port: "3000"
upstream_base_url: https://other.example.com
cors_origins:
  - https://ui.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://other.example.com", cfg.UpstreamBaseURL)
	assert.Equal(t, []string{"https://ui.example.com"}, cfg.CorsOrigins)
}

func TestConfigFileMissingFails(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
