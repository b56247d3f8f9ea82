// Package upload implements the pre-upload file checks and the
// upload→validate workflow state machine.
package upload

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxFileSize is the client-side upload ceiling. The backend enforces its
// own limit and remains the authority.
const MaxFileSize = 16 << 20 // 16 MiB

// allowedTypes mirrors the backend's accepted document formats.
var allowedTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

var (
	// ErrFileType rejects documents outside PDF/JPG/PNG.
	ErrFileType = errors.New("Invalid file type. Allowed: PDF, JPG, PNG")
	// ErrFileTooLarge rejects documents above MaxFileSize.
	ErrFileTooLarge = errors.New("File too large. Maximum size: 16MB")
)

// CheckFile applies the advisory client-side validation: MIME type within
// the allowed set, size within the ceiling. The backend may still reject
// for other reasons.
func CheckFile(mimeType string, size int64) error {
	mt := mimeType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	if _, ok := allowedTypes[strings.ToLower(strings.TrimSpace(mt))]; !ok {
		return ErrFileType
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// DetectMIME resolves a file's MIME type from its extension, falling back
// to content sniffing of the first bytes.
func DetectMIME(path string, head []byte) string {
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); mt != "" {
		return mt
	}
	return http.DetectContentType(head)
}
