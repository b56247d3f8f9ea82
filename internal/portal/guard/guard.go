// Package guard decides whether a page may render for the current session.
// It is a pure function of session state; navigation is carried out by the
// caller based on the returned decision.
package guard

import (
	"github.com/veridoc/portal/internal/portal/models"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// ShowLoading: the session check has not settled yet. Render only a
	// neutral loading indicator; making a redirect decision now would flash
	// users to the login page before their persisted session is restored.
	ShowLoading Decision = iota

	// RedirectLogin: not authenticated.
	RedirectLogin

	// RedirectDashboard: authenticated but the role is not allowed here.
	// Deliberately distinct from RedirectLogin so "wrong role" never looks
	// like "not logged in".
	RedirectDashboard

	// Allow: render the guarded content.
	Allow
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Decide gates access to a page. With no allowedRoles, any authenticated
// user passes.
func Decide(st models.Session, allowedRoles ...models.Role) Decision {
	if st.Loading {
		return ShowLoading
	}
	if !st.Authenticated || st.User == nil {
		return RedirectLogin
	}
	if len(allowedRoles) == 0 {
		return Allow
	}
	for _, role := range allowedRoles {
		if st.User.Role == role {
			return Allow
		}
	}
	return RedirectDashboard
}
