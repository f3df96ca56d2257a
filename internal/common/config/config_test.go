package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "READ_TIMEOUT", "BODY_LIMIT_MB", "MAX_IMAGE_PIXELS", "MAX_OVERLAY_PIXELS", "SESSION_IDLE_MIN", "IMAGE_ROOT", "EXPORT_DB_PATH", "LOG_DIR", "LOG_LEVEL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 10, cfg.BodyLimitMB)
	assert.Equal(t, 40_000_000, cfg.MaxImagePixels)
	assert.Equal(t, 100_000_000, cfg.MaxOverlayPixels)
	assert.Equal(t, 120, cfg.SessionIdleMin)
	assert.Equal(t, "data/images", cfg.ImageRoot)
	assert.Equal(t, "data/db/exports.db", cfg.ExportDBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_TIMEOUT", "30")
	t.Setenv("BODY_LIMIT_MB", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MAX_IMAGE_PIXELS", "1000000")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.ReadTimeout)
	assert.Equal(t, 10, cfg.BodyLimitMB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 1_000_000, cfg.MaxImagePixels)
}
