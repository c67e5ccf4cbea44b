package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the ranking service root, including the /api prefix.
	APIBaseURL string
	// APIToken is the bearer credential issued by the auth provider.
	// Empty means unauthenticated: the workflow shows the sign-in prompt.
	APIToken string
	// RequestTimeoutSeconds bounds every outgoing request so a dead
	// server cannot leave an upload pending forever.
	RequestTimeoutSeconds int
	// LogFile receives structured logs; stdout belongs to the TUI.
	LogFile string
}

func LoadConfig() (*Config, error) {
	// Load .env if present; ignored when the file does not exist.
	_ = godotenv.Load()

	cfg := &Config{
		// Trailing slash stripped to prevent double slashes in request paths.
		APIBaseURL:            strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000/api"), "/"),
		APIToken:              getEnv("API_TOKEN", ""),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 30),
		LogFile:               getEnv("LOG_FILE", "recruit-console.log"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
