package common

import (
	"fmt"
	"regexp"
	"time"
)

// FormatFileSize renders a byte count in a human-readable unit,
// e.g. 512 -> "512 B", 2048 -> "2.0 KB", 3145728 -> "3.0 MB".
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// FormatScore renders a [0,1] score as a percentage with one decimal,
// e.g. 0.93 -> "93.0%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// FormatDate renders a timestamp the way listing pages display it,
// e.g. "Jan 2, 2026 15:04".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs the basic shape check applied to registration
// and login forms before any request is issued.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
