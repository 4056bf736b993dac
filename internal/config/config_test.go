package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "release", cfg.Mode)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.EqualValues(t, 32768, cfg.ReadLimit)
	require.NotEmpty(t, cfg.DatabaseURL)
	require.NotEmpty(t, cfg.RedisURL)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Port)
	require.Equal(t, "from-env", cfg.JWTSecret)
}
