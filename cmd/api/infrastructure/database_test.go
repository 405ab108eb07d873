package infrastructure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-crud-service/internal/config"
)

func testConfig(t *testing.T, path string) *config.Config {
	cfg, err := config.LoadConfig(t.TempDir(), nil)
	require.NoError(t, err)
	cfg.DB.Path = path
	cfg.Logger.Level = "silent"
	return cfg
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=busy_timeout(5000)", SQLiteDSN(":memory:", 5*time.Second))
	assert.Equal(t, "users.db?_pragma=busy_timeout(250)&_pragma=journal_mode(WAL)", SQLiteDSN("users.db", 250*time.Millisecond))
	assert.Equal(t, "file:users.db?mode=rwc&_pragma=busy_timeout(0)&_pragma=journal_mode(WAL)", SQLiteDSN("file:users.db?mode=rwc", 0))
}

func TestNewDatabase_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	cfg := testConfig(t, path)

	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("user"))
	require.NoError(t, CloseDatabase(db))
	assert.FileExists(t, path)

	// Reopening an existing file keeps the schema in place
	db, err = NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("user"))
	require.NoError(t, CloseDatabase(db))
}

func TestNewDatabase_Memory(t *testing.T) {
	cfg := testConfig(t, ":memory:")

	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.True(t, db.Migrator().HasTable("user"))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t, "users.db")
	cfg.DB.Driver = "mysql"

	_, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}
