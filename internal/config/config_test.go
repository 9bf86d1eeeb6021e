package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  user: survey
  dbname: survey
session:
  secret: dev-secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.True(t, cfg.Database.ParseTime)
	assert.Equal(t, "survey_session", cfg.Session.CookieName)
	assert.Equal(t, time.Duration(0), cfg.Session.ExpireTime)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.False(t, cfg.Admin.Enabled())
	assert.False(t, cfg.Export.QuoteFields)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
  trusted_proxies:
    - 10.0.0.0/8
session:
  secret: dev-secret
  expire_hours: 12
admin:
  username: admin
  password: pw
export:
  quote_fields: true
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 12*time.Hour, cfg.Session.ExpireTime)
	assert.True(t, cfg.Admin.Enabled())
	assert.True(t, cfg.Export.QuoteFields)
}

func TestLoadConfigEnvBinding(t *testing.T) {
	dir := writeConfig(t, `
session:
  secret: dev-secret
`)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("ADMIN_USERNAME", "root")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "root", cfg.Admin.Username)
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
session:
  secret: short
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"8080\"\n")

	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
}
