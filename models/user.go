package models

import "github.com/golang-jwt/jwt/v5"

// User is the signed-in identity, in the shape returned by the sign-in
// provider.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// SessionClaims are the claims of a session token: the user plus the
// registered expiry fields.
type SessionClaims struct {
	User
	jwt.RegisteredClaims
}
