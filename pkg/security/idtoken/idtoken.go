package idtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the subset of the provider ID-token claims the portal reads.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

var ErrMalformed = errors.New("malformed id token")

// Parse reads the claims of a provider-issued ID token without verifying its
// signature. The provider validates tokens on every remote call; locally the
// claims are only used to decide when a cached session needs a refresh, the
// same way the vendor's client SDKs read expiry.
func Parse(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, ErrMalformed
	}

	var c Claims
	if v, ok := mc["user_id"].(string); ok && v != "" {
		c.UserID = v
	} else if sub, err := mc.GetSubject(); err == nil {
		c.UserID = sub
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Expired reports whether the token's exp claim has passed. Tokens without a
// readable exp claim count as expired.
func Expired(token string, now time.Time) bool {
	c, err := Parse(token)
	if err != nil || c.ExpiresAt.IsZero() {
		return true
	}
	return now.After(c.ExpiresAt)
}
