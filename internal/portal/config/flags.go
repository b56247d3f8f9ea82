package config

import (
	"flag"
	"os"
	"time"

	"github.com/veridoc/portal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the verification backend
//	-ocr string base URL of the OCR preview service
//	-t int      request timeout in seconds (default from Config)
//	-db string  path of the local token database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-ocr", "-t", "-db"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "base URL of the verification backend")
	fs.StringVar(&cfg.OCRBaseURL, "ocr", cfg.OCRBaseURL, "base URL of the OCR preview service")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenDBPath, "db", cfg.TokenDBPath, "path of the local token database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
