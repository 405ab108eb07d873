package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("http-port", "8080", "")
	fs.String("db-path", "users.db", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.True(t, cfg.App.SwaggerEnabled)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "users.db", cfg.DB.Path)
	assert.Equal(t, 5*time.Second, cfg.DB.BusyTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_PORT=9090\nDB_PATH=/var/lib/users.db\nREDIS_ENABLED=true\nREDIS_CACHE_TTL=30s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "/var/lib/users.db", cfg.DB.Path)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("HTTP_PORT=9090\nDB_PATH=file.db\n"), 0o600))
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("DB_PATH", "env.db")

	t.Run("env over file", func(t *testing.T) {
		cfg, err := LoadConfig(dir, newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "9191", cfg.App.HTTPPort)
		assert.Equal(t, "env.db", cfg.DB.Path)
	})

	t.Run("explicit flag over env", func(t *testing.T) {
		cfg, err := LoadConfig(dir, newFlags(t, "--db-path", "flag.db"))
		require.NoError(t, err)
		assert.Equal(t, "9191", cfg.App.HTTPPort)
		assert.Equal(t, "flag.db", cfg.DB.Path)
	})
}

func TestLoadConfig_ProductionLogging(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir(), nil)
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "bad http port", mutate: func(c *Config) { c.App.HTTPPort = "http" }, wantErr: "HTTP_PORT"},
		{name: "port out of range", mutate: func(c *Config) { c.App.HTTPPort = "70000" }, wantErr: "HTTP_PORT"},
		{name: "zero shutdown", mutate: func(c *Config) { c.App.ShutdownTimeout = 0 }, wantErr: "SHUTDOWN_TIMEOUT_SECONDS"},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "empty sqlite path", mutate: func(c *Config) { c.DB.Path = "" }, wantErr: "DB_PATH"},
		{name: "postgres port", mutate: func(c *Config) { c.DB.Driver = DriverPostgres; c.DB.Port = "" }, wantErr: "DB_PORT"},
		{name: "redis ttl", mutate: func(c *Config) { c.Redis.Enabled = true; c.Redis.CacheTTL = 0 }, wantErr: "REDIS_CACHE_TTL"},
		{name: "postgres ok", mutate: func(c *Config) { c.DB.Driver = DriverPostgres }},
		{name: "redis ok", mutate: func(c *Config) { c.Redis.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "users", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=users port=5432 sslmode=disable", c.DSN())
}
