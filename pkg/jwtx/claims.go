package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. Short-lived access tokens, week-long refresh
// tokens. Both can be overridden per-service via configuration.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the fixed payload carried by every token this codec produces.
// Serialization to and from the wire shape happens only inside the codec;
// the rest of the system deals in this typed form.
type Claims struct {
	// Subject is the username the token was issued to.
	Subject string

	// Authorities are the role strings granted to the subject. Access
	// tokens carry at least one; refresh tokens carry none.
	Authorities []string

	// ExpiresAt is the instant the token stops being valid. A token
	// presented exactly at this instant is already expired.
	ExpiresAt time.Time
}

// HasAuthorities reports whether the token carried the authority claim.
// Access-token consumers must reject tokens without it.
func (c Claims) HasAuthorities() bool {
	return len(c.Authorities) > 0
}

// wireClaims is the on-the-wire JSON shape: {sub, auth, exp} where auth is
// the comma-joined authority list, matching what every deployed verifier
// expects.
type wireClaims struct {
	jwt.RegisteredClaims

	Auth string `json:"auth,omitempty"`
}

func toWire(c Claims) wireClaims {
	return wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Auth: strings.Join(c.Authorities, ","),
	}
}

func fromWire(w wireClaims) Claims {
	c := Claims{Subject: w.Subject}
	if w.ExpiresAt != nil {
		c.ExpiresAt = w.ExpiresAt.Time
	}
	if w.Auth != "" {
		c.Authorities = strings.Split(w.Auth, ",")
	}
	return c
}
