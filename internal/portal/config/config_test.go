package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000/api", c.BackendBaseURL)
	assert.Empty(t, c.OCRBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "portal.db", c.TokenDBPath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"testbin"}
	t.Cleanup(func() { os.Args = origArgs })

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func Test_parseEnv_Overlays(t *testing.T) {
	t.Setenv("PORTAL_BACKEND_URL", "https://backend.example/api")
	t.Setenv("PORTAL_TIMEOUT", "30s")
	t.Setenv("PORTAL_TOKEN_DB", "/tmp/tokens.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://backend.example/api", cfg.BackendBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/tokens.db", cfg.TokenDBPath)
	assert.Empty(t, cfg.OCRBaseURL, "unset variables keep defaults")
}

func Test_parseEnv_InvalidDurationKeepsDefault(t *testing.T) {
	t.Setenv("PORTAL_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func Test_parseFlags_Overlays(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-b", "https://flag.example/api", "-t", "60", "-ocr", "http://ocr.local"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "https://flag.example/api", cfg.BackendBaseURL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "http://ocr.local", cfg.OCRBaseURL)
	assert.Equal(t, "portal.db", cfg.TokenDBPath)
}
