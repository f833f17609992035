package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "artisan")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "test")

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "artisan", cfg.DBName)
	assert.Equal(t, "test", cfg.AppEnv)
	// default port when APP_PORT is unset
	assert.Equal(t, "8080", cfg.AppPort)
}
