package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("WARESTOCK_SYSTEM_WORKDIR", workdir)

	cfg := LoadConfig(filepath.Join(workdir, "missing.yml"))
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, workdir, cfg.System.Workdir)
	assert.DirExists(t, filepath.Join(workdir, "backup"))
}

func TestLoadConfigFromFile(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("WARESTOCK_SYSTEM_WORKDIR", workdir)

	cfile := filepath.Join(workdir, "warestock.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(`
system:
  appid: warestock
  location: UTC
web:
  host: 127.0.0.1
  port: 2816
database:
  type: postgres
  host: db.internal
`), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, 2816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestEnvOverrides(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("WARESTOCK_SYSTEM_WORKDIR", workdir)
	t.Setenv("WARESTOCK_DB_TYPE", "postgres")
	t.Setenv("WARESTOCK_DB_HOST", "10.0.0.9")

	cfg := LoadConfig(filepath.Join(workdir, "missing.yml"))
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "10.0.0.9", cfg.Database.Host)
}
