// Package models defines the data types exchanged with the verification
// backend and the client-side session state built on top of them.
package models

import "fmt"

// Role is the account role assigned by the backend.
type Role string

const (
	RoleUser        Role = "user"
	RoleInstitution Role = "institution"
	RoleAdmin       Role = "admin"
)

// ParseRole validates a raw role string from the backend.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleInstitution, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is the authenticated account as reported by /auth/profile.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the client-side auth state snapshot handed to the route guard
// and page controllers. Token and User are kept consistent: a cleared token
// always comes with a nil User.
type Session struct {
	User          *User
	Token         string
	Authenticated bool
	Loading       bool
}
