package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OutputDir string

	DatadumpURL       string
	DatadumpTimeoutMs int

	ISO639DBPath string

	LogLevel       string
	LogEnvironment string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DatadumpURL: getEnv("DATADUMP_URL", ""),
		// 0 leaves the fetch without a deadline
		DatadumpTimeoutMs: getEnvInt("DATADUMP_TIMEOUT_MS", 0),

		ISO639DBPath: getEnv("ISO639_DB_PATH", ":memory:"),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogEnvironment: getEnv("LOG_ENV", "production"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
