package config

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Environment keys for application settings
const (
	KeyBackendURL  = "AITUTOR_BACKEND_URL"
	KeyUserID      = "AITUTOR_USER_ID"
	KeyDataDir     = "AITUTOR_DATA_DIR"
	KeyLogMode     = "AITUTOR_LOG_MODE"
	KeyHTTPTimeout = "AITUTOR_HTTP_TIMEOUT_SEC"
)

// Default values
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultDataDir        = ".aitutor"
	DefaultLogMode        = "dev"
	DefaultHTTPTimeoutSec = 60
)

// Settings holds the resolved application configuration
type Settings struct {
	BackendURL  string
	UserID      string
	DataDir     string
	LogMode     string
	HTTPTimeout time.Duration
}

// Load reads settings from the environment, after loading a .env file if one
// is present. Missing values fall back to defaults; a missing user id gets a
// generated one so a fresh install works without configuration.
func Load() *Settings {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	s := &Settings{
		BackendURL:  getEnv(KeyBackendURL, DefaultBackendURL),
		UserID:      getEnv(KeyUserID, ""),
		DataDir:     getEnv(KeyDataDir, DefaultDataDir),
		LogMode:     getEnv(KeyLogMode, DefaultLogMode),
		HTTPTimeout: time.Duration(getEnvInt(KeyHTTPTimeout, DefaultHTTPTimeoutSec)) * time.Second,
	}

	if s.UserID == "" {
		s.UserID = "user-" + uuid.NewString()
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = DefaultHTTPTimeoutSec * time.Second
	}

	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
