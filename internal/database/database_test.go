package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Path: "/tmp/store/./pib.db"}

	dsn := cfg.DSN()
	assert.True(t, len(dsn) > 0)
	assert.Contains(t, dsn, "/tmp/store/pib.db?")
	assert.Contains(t, dsn, "_pragma=journal_mode(WAL)")
	assert.Contains(t, dsn, "_pragma=foreign_keys(ON)")
	assert.Contains(t, dsn, "_pragma=busy_timeout(5000)")
}

func TestConnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cfg := Config{
			Path:               filepath.Join(t.TempDir(), "pib.db"),
			MaxOpenConnections: 2,
			MaxIdleConnections: 1,
			ConnMaxLifetime:    time.Minute,
		}

		db, err := Connect(cfg)
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.NoError(t, db.Ping())
		assert.Equal(t, 2, db.Stats().MaxOpenConnections)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, err := Connect(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database path is required")
	})
}
