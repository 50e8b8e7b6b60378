package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.Nil(t, err)
	assert.Equal(t, StoreSqlite, c.Store)
	assert.Equal(t, "8003", c.Port)
	assert.Equal(t, "localhost:8003", c.Addr())
	assert.Equal(t, filepath.Join(".", "whisperchain.db"), c.DatabasePath())
	assert.False(t, c.SimulateLatency)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("WHISPER_STORE", "Memory")
	t.Setenv("WHISPER_PORT", "9100")
	t.Setenv("WHISPER_SIMULATE_LATENCY", "true")
	t.Setenv("MIDNIGHT_WALLET_ADDRESS", "  midnight1configured  ")

	c, err := Load("")
	require.Nil(t, err)
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, "9100", c.Port)
	assert.True(t, c.SimulateLatency)
	assert.Equal(t, "midnight1configured", c.WalletAddress)
}

func TestConfigFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "wall.yaml")
	err := os.WriteFile(fname, []byte("store: redis\nredis_addr: cache:6379\nrate_limit: 2.5\n"), 0644)
	require.Nil(t, err)

	c, err := Load(fname)
	require.Nil(t, err)
	assert.Equal(t, StoreRedis, c.Store)
	assert.Equal(t, "cache:6379", c.RedisAddr)
	assert.Equal(t, 2.5, c.RateLimit)
}

func TestBadStore(t *testing.T) {
	t.Setenv("WHISPER_STORE", "floppy")
	_, err := Load("")
	assert.NotNil(t, err)
}
