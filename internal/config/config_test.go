package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir into an empty directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PORT", "")
	t.Setenv("PORTFOLIO_PORT", "")
	os.Unsetenv("PORT")
	os.Unsetenv("PORTFOLIO_PORT")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("missing.yml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
mode: debug
session_ttl: 5m
contact_email: file@example.com
`), 0o644))
	t.Setenv("PORTFOLIO_CONTACT_EMAIL", "env@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "env@example.com", cfg.ContactEmail)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORTFOLIO_ASSETS_DIR=/srv/assets\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PORTFOLIO_ASSETS_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.AssetsDir)
}

func TestPlatformPort(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Mode = "production"
	assert.ErrorContains(t, cfg.Validate(), "invalid mode")

	cfg = Default()
	cfg.SessionTTL = 0
	assert.ErrorContains(t, cfg.Validate(), "session_ttl")

	cfg = Default()
	cfg.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "port is required")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
