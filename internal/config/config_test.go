package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cepip-app-go/pkg/logger"
)

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "cmd", "cepip-app")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"# local settings\n"+
			"HTTP_PORT=9090\n"+
			"SECRET_KEY=\"from-file\"\n"+
			"CORS_ALLOWED_ORIGINS=https://a.example, https://b.example\n"+
			"AUTH_TOKEN_TTL=2h\n",
	), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{"HTTP_PORT", "CORS_ALLOWED_ORIGINS", "AUTH_TOKEN_TTL"} {
		key := key
		t.Cleanup(func() { os.Unsetenv(key) })
	}
	t.Setenv("SECRET_KEY", "from-env")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"users", "schema_migrations"}, cfg.Copy.ExcludedTables)
	assert.Equal(t, 5*time.Minute, cfg.LookupCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "cepip", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=cepip port=5432 sslmode=disable TimeZone=UTC", cfg.GetDSN())

	cfg.DSN = "postgres://u:p@db/cepip"
	assert.Equal(t, "postgres://u:p@db/cepip", cfg.GetDSN())
}

func TestValidate(t *testing.T) {
	cfg := Config{Auth: AuthConfig{TokenTTL: time.Hour}, ShutdownTimeout: time.Second}
	assert.Error(t, cfg.Validate())

	cfg.Auth.SkipAuth = true
	assert.NoError(t, cfg.Validate())

	cfg.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg.ShutdownTimeout = time.Second
	cfg.Auth.TokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("SOME_LIST", " , ,")
	assert.Equal(t, []string{"x"}, getEnvList("SOME_LIST", []string{"x"}))

	t.Setenv("SOME_LIST", "ente, persona,,parcela")
	assert.Equal(t, []string{"ente", "persona", "parcela"}, getEnvList("SOME_LIST", nil))
}
