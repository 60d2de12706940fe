package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role determines what an operator may do in the console.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

// Identity describes the signed-in operator.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Moderator returns the stamp recorded on decided content.
func (i Identity) Moderator() Moderator {
	return Moderator{ID: i.ID, Name: i.Name}
}

// SessionState is the tagged state of the session store.
type SessionState string

const (
	SessionLoading       SessionState = "loading"
	SessionAuthenticated SessionState = "authenticated"
	SessionAnonymous     SessionState = "anonymous"
)

// SessionSnapshot is a consistent read of the session store. User is set only
// when State is SessionAuthenticated.
type SessionSnapshot struct {
	State SessionState `json:"state"`
	User  *Identity    `json:"user,omitempty"`
}

// JWTClaims represents the JWT payload of the session bearer token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
