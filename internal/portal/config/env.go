package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over .env entries (godotenv does not override).
//
// Recognized variables:
//
//	PORTAL_BACKEND_URL   — backend REST base URL
//	PORTAL_OCR_URL       — OCR preview service base URL
//	PORTAL_TIMEOUT       — request timeout, Go duration syntax ("15s")
//	PORTAL_TOKEN_DB      — path of the local token database
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.BackendBaseURL = getEnvString("PORTAL_BACKEND_URL", cfg.BackendBaseURL)
	cfg.OCRBaseURL = getEnvString("PORTAL_OCR_URL", cfg.OCRBaseURL)
	cfg.RequestTimeout = getEnvDuration("PORTAL_TIMEOUT", cfg.RequestTimeout)
	cfg.TokenDBPath = getEnvString("PORTAL_TOKEN_DB", cfg.TokenDBPath)
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
