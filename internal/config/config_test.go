package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flashflow/flashflow/internal/config"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := config.Config{
		Addr:         ":8080",
		DBPath:       "test.db",
		LogLevel:     "INFO",
		SeedCards:    true,
		ActivityDays: 7,
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := config.Config{
		DBPath:       "test.db",
		LogLevel:     "INFO",
		ActivityDays: 7,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := config.Config{
		Addr:         ":8080",
		LogLevel:     "INFO",
		ActivityDays: 7,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_NonPositiveActivityDays(t *testing.T) {
	cfg := config.Config{
		Addr:   ":8080",
		DBPath: "test.db",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ACTIVITY_DAYS")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SEED_CARDS", "")
	t.Setenv("ACTIVITY_DAYS", "")

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:flashflow.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.SeedCards)
	assert.Equal(t, 7, cfg.ActivityDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SEED_CARDS", "false")
	t.Setenv("ACTIVITY_DAYS", "14")

	cfg := config.Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.False(t, cfg.SeedCards)
	assert.Equal(t, 14, cfg.ActivityDays)
}
