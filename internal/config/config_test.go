package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "garage"
  environment: "test"
auth:
  jwt_secret: "test-secret"
  token_ttl: 1h
database:
  path: "data/test.db"
server:
  port: 9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "garage", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	// Незаданные поля получают значения по умолчанию
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.Equal(t, "configs/reference.yaml", cfg.Reference.Path)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "data/test.db"
`)

	// Пустой секрет валит старт, запасного значения нет
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoad_RequiresDatabasePath(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "test-secret"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_GARAGE_SECRET", "secret-from-env")

	path := writeConfig(t, `
auth:
  jwt_secret: "${TEST_GARAGE_SECRET}"
database:
  path: "data/test.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Auth.JWTSecret)
}

func TestLoad_TelegramRequiresManagers(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "test-secret"
database:
  path: "data/test.db"
telegram:
  bot_token: "12345:token"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manager chat ids")
}
