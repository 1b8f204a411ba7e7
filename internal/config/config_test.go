package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/bookly")
	for _, key := range []string{"APP_ADDR", "DB_DRIVER", "DB_QUERY_TIMEOUT", "DB_MAX_CONNS", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "ENABLE_HSTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverPGX, cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.EnableHSTS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "/tmp/books.db")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_QUERY_TIMEOUT", "250ms")
	t.Setenv("DB_MAX_CONNS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("ENABLE_HSTS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.QueryTimeout)
	assert.Equal(t, int32(3), cfg.MaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"bad timeout", map[string]string{"DB_QUERY_TIMEOUT": "soon"}},
		{"zero timeout", map[string]string{"DB_QUERY_TIMEOUT": "0s"}},
		{"bad max conns", map[string]string{"DB_MAX_CONNS": "many"}},
		{"zero max conns", map[string]string{"DB_MAX_CONNS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/bookly")
			t.Setenv("DB_DRIVER", "")
			t.Setenv("DB_QUERY_TIMEOUT", "")
			t.Setenv("DB_MAX_CONNS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingDatabaseURLSentinel(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".env")
	require.NoError(t, os.WriteFile(p, []byte("DATABASE_URL=from_file\nAPP_ADDR=:7070\n"), 0644))

	t.Setenv("DATABASE_URL", "from_env")
	t.Setenv("APP_ADDR", "")
	require.NoError(t, os.Unsetenv("APP_ADDR"))

	t.Chdir(tmp)

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DATABASE_URL"))
	assert.Equal(t, ":7070", os.Getenv("APP_ADDR"))
}

func TestNewLogger(t *testing.T) {
	t.Run("json at info drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, Config{LogLevel: "info", LogFormat: "json"})

		logger.Debug("hidden")
		logger.Info("shown", "k", "v")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
	})

	t.Run("text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, Config{LogLevel: "debug", LogFormat: "text"})

		logger.Debug("visible")

		assert.Contains(t, buf.String(), "msg=visible")
	})
}
