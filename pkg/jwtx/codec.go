package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrUnsupported      = errors.New("jwtx: unsupported algorithm or format")
	ErrExpired          = errors.New("jwtx: token expired")
)

const signingKeyLength = 32

// Codec signs and verifies compact HS256 tokens with a single symmetric key.
// It is the only place wire claims are produced or consumed; everything else
// in the system handles the typed Claims struct.
type Codec struct {
	key []byte
}

// NewCodec wraps a derived 32-byte HMAC-SHA256 key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != signingKeyLength {
		return nil, fmt.Errorf("jwtx: signing key must be %d bytes, got %d", signingKeyLength, len(key))
	}
	c := &Codec{key: make([]byte, signingKeyLength)}
	copy(c.key, key)
	return c, nil
}

// Sign produces a compact header.payload.signature token over
// {sub, auth, exp}. Expiry is carried at whole-second precision on the wire.
func (c *Codec) Sign(subject string, authorities []string, expiry time.Time) (string, error) {
	claims := Claims{
		Subject:     subject,
		Authorities: authorities,
		ExpiresAt:   expiry,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, toWire(claims))
	return token.SignedString(c.key)
}

// Verify parses and validates a token, failing closed on any defect. The
// failure modes are disjoint: ErrExpired means the signature checked out but
// the expiry instant has passed (a token presented exactly at its expiry is
// expired); ErrMalformed and ErrInvalidSignature cover structural damage and
// signature mismatch; ErrUnsupported covers foreign algorithms or formats.
func (c *Codec) Verify(token string) (Claims, error) {
	w, err := c.parse(token)
	if err != nil {
		return Claims{}, err
	}
	return fromWire(w), nil
}

// ParseExpired is the lenient path used by the refresh flow to recover the
// subject of an access token that may already be expired. It accepts valid
// and expired tokens alike but still rejects everything else. It must never
// be used to authorize access: it proves subject identity only, ahead of a
// deliberate expiry decision by the caller.
func (c *Codec) ParseExpired(token string) (Claims, error) {
	w, err := c.parse(token)
	if err != nil && !errors.Is(err, ErrExpired) {
		return Claims{}, err
	}
	return fromWire(w), nil
}

// parse runs the underlying JWT machinery once and maps its error surface
// onto the codec's taxonomy. On ErrExpired the returned claims are still
// populated for the lenient path.
func (c *Codec) parse(token string) (wireClaims, error) {
	var w wireClaims
	parsed, err := jwt.ParseWithClaims(token, &w, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnsupported
		}
		return c.key, nil
	})

	switch {
	case err == nil:
		// fall through to claim checks below
	case errors.Is(err, ErrUnsupported):
		return wireClaims{}, ErrUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return wireClaims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return wireClaims{}, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		// Signature was valid; claims remain extractable for lenient callers.
		return w, ErrExpired
	default:
		return wireClaims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if !parsed.Valid || w.Subject == "" {
		return wireClaims{}, ErrMalformed
	}

	// A token without an expiry never expires, which is not a token this
	// codec issues. Fail closed.
	if w.ExpiresAt == nil {
		return wireClaims{}, ErrMalformed
	}

	// The library already rejected expired tokens, but the boundary case of
	// "exactly at expiry" depends on its clock handling. Make the contract
	// explicit: now >= exp is expired, compared in wall-clock milliseconds.
	if nowMillis() >= w.ExpiresAt.UnixMilli() {
		return w, ErrExpired
	}

	return w, nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
