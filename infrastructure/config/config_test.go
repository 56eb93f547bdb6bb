package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TABLE_NAME", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "rollout", cfg.DynamoDBTable)
	assert.Equal(t, "GSI1", cfg.IndexName)
	assert.Equal(t, 900*time.Second, cfg.PresignExpiry())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableCORS)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table_name: from-file\nmedia_bucket: file-bucket\nlog_level: debug\njwt_audience: [a, b]\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MEDIA_BUCKET", "env-bucket")
	t.Setenv("TABLE_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DynamoDBTable)
	assert.Equal(t, "env-bucket", cfg.MediaBucket)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"a", "b"}, cfg.JWTAudience)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Environment = "production"
	assert.ErrorContains(t, cfg.Validate(), "MEDIA_BUCKET")

	cfg.MediaBucket = "media"
	assert.ErrorContains(t, cfg.Validate(), "JWT")

	cfg.IsLambda = true
	assert.NoError(t, cfg.Validate())

	cfg.DynamoDBTable = ""
	assert.ErrorContains(t, cfg.Validate(), "TABLE_NAME")
}

func TestTokenIssuer(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, cfg.TokenIssuer())

	cfg.AWSRegion = "us-east-1"
	cfg.UserPoolID = "eu-west-2_AbCdEf123"
	assert.Equal(t, "https://cognito-idp.eu-west-2.amazonaws.com/eu-west-2_AbCdEf123", cfg.TokenIssuer())

	cfg.JWTIssuer = "https://issuer.example"
	assert.Equal(t, "https://issuer.example", cfg.TokenIssuer())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}

func TestConfigWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")

	initial, err := NewLoader(path).Load()
	require.NoError(t, err)

	// Production keeps the watcher inert; Reload is still callable.
	initial.Environment = "production"
	w, err := NewConfigWatcher(initial, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	var got string
	w.OnChange(func(c *Config) { got = c.LogLevel })

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))
	w.Reload()

	assert.Equal(t, "debug", got)
	assert.Equal(t, "debug", w.GetConfig().LogLevel)
}

func TestConfigWatcher_InvalidReloadKeepsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))
	t.Setenv("TABLE_NAME", "")

	initial, err := NewLoader(path).Load()
	require.NoError(t, err)
	w, err := NewConfigWatcher(initial, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("table_name: \"\"\n"), 0o600))
	w.Reload()

	assert.Same(t, initial, w.GetConfig())
}
