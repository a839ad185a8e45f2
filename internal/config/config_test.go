package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "DB_PATH", "SEED_PATH", "ZONES_PATH",
		"REDIS_URL", "PORT_CACHE_TTL", "LOOKUP_TIMEOUT", "LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/app.db", cfg.DSN())
	assert.Equal(t, "data/seeds/reference.json", cfg.SeedPath)
	assert.Equal(t, time.Hour, cfg.PortCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/voyages")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/voyages", cfg.DSN())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("LOOKUP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LOOKUP_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}
