// Package ocr talks to the optional OCR preview microservice. The preview
// is strictly best-effort: an unconfigured or unreachable service degrades
// to a warning and never blocks the upload flow.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/veridoc/portal/internal/common"
)

// Client calls POST {base}/extract/ with a multipart file and returns the
// flat field map the service extracted.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a Client, or nil when baseURL is empty (preview disabled).
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a preview service is configured. Safe on nil.
func (c *Client) Enabled() bool { return c != nil }

// Extract uploads the file and returns extracted fields. The response is
// either a flat string map or {"error": "..."}.
func (c *Client) Extract(ctx context.Context, filename string, r io.Reader) (map[string]string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract/", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr preview: %w", common.ErrUnavailable)
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ocr preview: decode: %w", err)
	}
	if msg, ok := raw["error"]; ok {
		return nil, fmt.Errorf("ocr preview: %v", msg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr preview: %s", resp.Status)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		fields[k] = fmt.Sprintf("%v", v)
	}
	return fields, nil
}
