// Package config resolves portal settings from, in order of precedence:
// built-in defaults, environment variables (with .env support), a JSON
// config file, and command-line flags. Later sources override earlier ones.
package config

import "time"

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - BackendBaseURL: base URL of the verification backend REST API.
//   - OCRBaseURL: base URL of the OCR preview service; empty disables the
//     preview panel.
//   - RequestTimeout: per-request timeout for backend calls.
//   - TokenDBPath: path of the local sqlite file holding the session token.
type Config struct {
	BackendBaseURL string
	OCRBaseURL     string
	RequestTimeout time.Duration
	TokenDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://localhost:5000/api"
	c.OCRBaseURL = ""
	c.RequestTimeout = 15 * time.Second
	c.TokenDBPath = "portal.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
