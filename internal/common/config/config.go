package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	BodyLimitMB  int

	MaxImagePixels   int
	MaxOverlayPixels int
	SessionIdleMin   int

	ImageRoot    string
	ExportDBPath string
	LogDir       string
	LogLevel     string
	CORSOrigins  []string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:  getEnvAsInt("BODY_LIMIT_MB", 10),

		MaxImagePixels:   getEnvAsInt("MAX_IMAGE_PIXELS", 40_000_000),
		MaxOverlayPixels: getEnvAsInt("MAX_OVERLAY_PIXELS", 100_000_000),
		SessionIdleMin:   getEnvAsInt("SESSION_IDLE_MIN", 120),

		ImageRoot:    getEnv("IMAGE_ROOT", "data/images"),
		ExportDBPath: getEnv("EXPORT_DB_PATH", "data/db/exports.db"),
		LogDir:       getEnv("LOG_DIR", "debug"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
