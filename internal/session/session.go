// Package session owns the bearer credential for the logged-in user.
// At most one token is active at a time; it is destroyed on logout or on
// any authentication-rejected response.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider is the collaborator contract every network-calling component
// reads the credential through.
type Provider interface {
	// Token returns the current credential and whether one exists.
	Token() (string, bool)
	Set(token string) error
	Clear() error
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim, or that fail to parse, are not treated as
// expired here; the backend has the final say and will answer 401.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
