package utils // package utils provides hashing and session-token helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outward decode failure.  Malformed
// encoding, bad signature, expiry and a missing subject claim all collapse
// into this value so the caller cannot tell which case occurred; the
// underlying jwt error stays wrapped for server-side logs.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded view of a session token.
type Claims struct {
	Subject   string    // the account email the token asserts
	ExpiresAt time.Time // UTC expiry instant
}

// TokenCodec issues and verifies HS256 session tokens.  The secret and
// default TTL come from startup configuration; the codec itself is
// read-only after construction and safe for concurrent use.
type TokenCodec struct {
	Secret     string
	DefaultTTL time.Duration
}

// NewTokenCodec builds a codec.  A non-positive ttl falls back to the
// 30 minute default.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenCodec{Secret: secret, DefaultTTL: ttl}
}

// Issue signs a token with claims {sub, exp, iat}.  A zero ttl means
// DefaultTTL; negative values are honored as-is, which tests use to mint
// already-expired tokens.  Signing only fails on misconfiguration.
func (tc *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = tc.DefaultTTL
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(tc.Secret))
}

// Decode verifies signature, structure and expiry and returns the claims.
// Any failure, including a missing sub claim, returns an error wrapping
// ErrInvalidToken.
func (tc *TokenCodec) Decode(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC before touching the key.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(tc.Secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, wrapInvalid(err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, wrapInvalid(err)
	}
	return Claims{Subject: sub, ExpiresAt: exp.Time.UTC()}, nil
}

func wrapInvalid(err error) error {
	if err == nil {
		return ErrInvalidToken
	}
	return errors.Join(ErrInvalidToken, err)
}
