package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Equal(t, ":8080", C.Server.Port)
	assert.Equal(t, "file", C.Game.Store)
	assert.Equal(t, "blackjack.sav", C.Game.SaveFile)
	assert.Equal(t, 10*time.Minute, C.Game.DecisionTimeout)
	assert.Equal(t, 24*time.Hour, C.JWT.TTL)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: ":9000"
game:
  store: redis
  seed: 42
jwt:
  secret: from-file
`), 0o644))

	t.Setenv("BLACKJACK_JWT_SECRET", "from-env")
	t.Setenv("BLACKJACK_GAME_SAVEFILE", "/tmp/other.sav")

	require.NoError(t, Load(path))
	assert.Equal(t, ":9000", C.Server.Port)
	assert.Equal(t, "redis", C.Game.Store)
	assert.Equal(t, int64(42), C.Game.Seed)
	assert.Equal(t, "from-env", C.JWT.Secret)
	assert.Equal(t, "/tmp/other.sav", C.Game.SaveFile)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	assert.Error(t, Load(path))
}
