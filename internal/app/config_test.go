package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET_KEY", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Recipes.PageSize)
	require.Equal(t, 10080, cfg.Recipes.CookingTimeMax)
	require.Equal(t, 10000, cfg.Recipes.AmountMax)
	require.Equal(t, "recipes/images/", cfg.Recipes.ImagePrefix)
	require.Equal(t, insecureJWTSecret, cfg.Auth.JWTSecretKey)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodgram.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"

[auth]
jwt_secret_key = "from-file"
access_token_ttl = "2h"

[recipes]
page_size = 10
cooking_time_max = 32000

[database]
driver = "sqlite"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PAGE_SIZE", "12")
	t.Setenv("JWT_SECRET_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "from-file", cfg.Auth.JWTSecretKey)
	require.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL.Duration)
	require.Equal(t, 12, cfg.Recipes.PageSize)
	require.Equal(t, 32000, cfg.Recipes.CookingTimeMax)
	require.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfigProductionNeedsSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("ENVIRONMENT", "production")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestMediaPath(t *testing.T) {
	require.Equal(t, "/media", mediaPath("/media"))
	require.Equal(t, "/static/media", mediaPath("https://cdn.example/static/media"))
	require.Equal(t, "/media", mediaPath(""))
}
