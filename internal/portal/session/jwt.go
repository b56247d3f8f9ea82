package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired peeks at the token's exp claim without verifying the
// signature — verification is the backend's job. A token that cannot be
// parsed or carries no exp is treated as live and left for the profile
// fetch to judge; only a definitely-expired token is rejected locally to
// avoid a doomed network round trip on startup.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
