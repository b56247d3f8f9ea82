package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/veridoc/portal/internal/flagx"
	"github.com/veridoc/portal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds. After parsing, set values are copied
// into the runtime Config.
type JsonConfig struct {
	BackendBaseURL string         `json:"backend_base_url"`
	OCRBaseURL     string         `json:"ocr_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenDBPath    string         `json:"token_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c / -config command-line flags via
// flagx.JsonConfigFlags(); when absent, nothing is loaded. Only fields
// present in the file override the current Config. Read or unmarshal
// errors panic, as the user explicitly pointed at a broken file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.OCRBaseURL != "" {
		cfg.OCRBaseURL = jc.OCRBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenDBPath != "" {
		cfg.TokenDBPath = jc.TokenDBPath
	}
}
