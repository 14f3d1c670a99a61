package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5432
user = "petspa"
password = "secret"
dbname = "petspa_booking"
sslmode = "require"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true

[calendar]
days = 6
open_time = "09:00"
close_time = "18:00"

[flow]
session_ttl_minutes = 45

[pet_service]
url = "http://pets:8081"
timeout = 5

[catalog_service]
url = "http://catalog:8082"
timeout = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 6, cfg.Calendar.Days)
	assert.Equal(t, "09:00", cfg.Calendar.OpenTime)
	assert.Equal(t, 45, cfg.Flow.SessionTTLMinutes)
	assert.Equal(t, "http://pets:8081", cfg.PetService.URL)
	assert.Equal(t, 3, cfg.CatalogService.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "petspa"
password = "petspa"
dbname = "petspa_booking"
sslmode = "disable"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "petspa-booking-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 6, cfg.Calendar.Days)
	assert.Equal(t, "09:00", cfg.Calendar.OpenTime)
	assert.Equal(t, "18:00", cfg.Calendar.CloseTime)
	assert.Equal(t, 30, cfg.Flow.SessionTTLMinutes)
}

func TestLoad_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "petspa",
		Password: "secret",
		DBName:   "petspa_booking",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=petspa password=secret dbname=petspa_booking sslmode=disable",
		cfg.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
