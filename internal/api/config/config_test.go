package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  port: 9090
database:
  dsn: "u:p@tcp(db:3306)/folio"
auth:
  jwt_secret: "from-file"
  admin_emails: ["Owner@Example.com"]
minio:
  main_bucket: "photos"
  buckets: ["photos", "docs"]
`

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfig), 0o644))

	require.NoError(t, LoadConfigFrom(dir))
	require.NotNil(t, Cfg)

	assert.Equal(t, 9090, Cfg.Server.Port)
	assert.Equal(t, "u:p@tcp(db:3306)/folio", Cfg.DB.DSN)
	assert.Equal(t, []string{"Owner@Example.com"}, Cfg.Auth.AdminEmails)
	assert.Equal(t, "photos", Cfg.MinIO.MainBucket)
	assert.Equal(t, []string{"photos", "docs"}, Cfg.MinIO.Buckets)

	// defaults
	assert.Equal(t, 24, Cfg.Auth.TokenTTLHours)
	assert.Equal(t, 8, Cfg.Stream.TextFetchConcurrency)
	assert.Equal(t, "folio_content", Cfg.Elastic.Indices.ContentIndex)
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfig), 0o644))
	t.Setenv("FOLIO_AUTH_JWT_SECRET", "from-env")

	require.NoError(t, LoadConfigFrom(dir))
	assert.Equal(t, "from-env", Cfg.Auth.JWTSecret)
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	require.NoError(t, LoadConfigFrom(t.TempDir()))
	assert.Equal(t, 8080, Cfg.Server.Port)
	assert.Equal(t, "media", Cfg.MinIO.MainBucket)
}
