package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/aim/pkg/infrastructure/config"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/sqlite"
)

func TestOpen(t *testing.T) {
	mem, err := Open(config.StoreConfig{Driver: config.DriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, mem)

	path := filepath.Join(t.TempDir(), "aim.db")
	db, err := Open(config.StoreConfig{Driver: config.DriverSQLite, SQLite: config.SQLiteConfig{Path: path}}, nil)
	require.NoError(t, err)
	defer db.Close()
	assert.IsType(t, &sqlite.Store{}, db)

	_, err = Open(config.StoreConfig{Driver: "redis"}, nil)
	assert.EqualError(t, err, "unsupported store driver: redis")
}
