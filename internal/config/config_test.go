package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/books-api/internal/validator"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.True(t, cfg.Limiter.Enabled)
	assert.Equal(t, float64(2), cfg.RPS)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BOOKS_PORT", "8080")
	t.Setenv("BOOKS_DB_DRIVER", "sqlite3")
	t.Setenv("BOOKS_DB_DSN", "file:books.db")
	t.Setenv("BOOKS_LIMITER_ENABLED", "false")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, "file:books.db", cfg.DSN)
	assert.False(t, cfg.Limiter.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 5000\nenv: staging\nshutdown-timeout: 5s\n"), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, EnvStaging, cfg.Environment)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	v := New()
	v.Set("port", 0)
	v.Set("db-driver", "mysql")
	v.Set("env", "qa")

	_, err := Load(v, "")
	require.Error(t, err)

	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"port must be between 1 and 65535",
		"env must be one of development, staging, production",
		"db-driver must be one of postgres, sqlite3",
	}, verr.Messages)
}
