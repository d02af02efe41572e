package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", c.AppEnv)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, DriverPostgres, c.DBDriver)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, c.DBConnectTimeout)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", c.ExternalAPIURL)
	assert.Equal(t, 10*time.Second, c.ExternalAPITimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("EXTERNAL_API_URL", "http://directory.local")
	t.Setenv("EXTERNAL_API_TIMEOUT", "2s")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", c.AppEnv)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "file::memory:", c.DSN())
	assert.Equal(t, "http://directory.local", c.ExternalAPIURL)
	assert.Equal(t, 2*time.Second, c.ExternalAPITimeout)
}

func TestLoad_SQLiteRequiresDSN(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := &Config{
		DBDriver:   DriverPostgres,
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "user",
		DBPassword: "p@ss",
		DBName:     "tasks",
		DBSSLMode:  "disable",
		DBSchema:   "Tasks",
	}
	assert.Equal(t, "postgres://user:p%40ss@db:5432/tasks?search_path=Tasks&sslmode=disable", c.DSN())

	c.DBDriver = DriverMySQL
	c.DBPort = "3306"
	assert.Equal(t, "user:p@ss@tcp(db:3306)/tasks?charset=utf8mb4&parseTime=True&loc=Local", c.DSN())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
