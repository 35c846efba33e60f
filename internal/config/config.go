package config

import (
	"crimestats/internal/logger"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath      string
	SkipMalformed bool

	Addr      string
	RateLimit int

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	return load(os.Stderr)
}

func load(logOut io.Writer) *Config {
	envErr := godotenv.Load()

	cfg := &Config{
		DataPath:      getEnv("CRIMESTATS_DATA_PATH", "crime.csv"),
		SkipMalformed: getEnvBool("CRIMESTATS_SKIP_MALFORMED", false),

		Addr:      getEnv("CRIMESTATS_ADDR", ":8080"),
		RateLimit: getEnvInt("CRIMESTATS_RATE_LIMIT", 20),

		LogLevel: getEnv("CRIMESTATS_LOG_LEVEL", "info"),
	}

	if envErr != nil {
		logger.New("config", cfg.LogLevel, logOut).Infof("No .env file found, falling back to system env vars")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
