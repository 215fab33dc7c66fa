package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesOriginalFallbacks(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, "toko_bagus_waihatu", cfg.Database.Name)
	assert.Equal(t, "your-secret-key", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadBytes)
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
  read_timeout: 3s
database:
  host: db.internal
  name: shop
jwt:
  secret: from-file
`), 0o600))

	t.Setenv("DB_NAME", "shop_env")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("MAX_PAGE_SIZE", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "shop_env", cfg.Database.Name)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 50, cfg.Server.MaxPageSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "3306", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "u:p@tcp(h:3306)/n?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", d.DSN())
}
