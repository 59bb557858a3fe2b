package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated subject resolved from a verified credential.
// It lives for a single request and is never persisted.
type Identity struct {
	UserID string
	Role   Role
	Email  string
}

// JWTClaims is the signed payload carried by issued credentials.
type JWTClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity derives the per-request identity from verified claims.
func (c *JWTClaims) Identity() *Identity {
	return &Identity{UserID: c.UserID, Role: c.Role, Email: c.Email}
}

// AuthPayload is returned by register and login.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
