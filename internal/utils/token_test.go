package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	tc := NewTokenCodec("test-secret", 30*time.Minute)

	raw, err := tc.Issue("a@acme.test", 0)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := tc.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@acme.test", claims.Subject)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestTokenCodecRejectsExpired(t *testing.T) {
	tc := NewTokenCodec("test-secret", 30*time.Minute)

	raw, err := tc.Issue("a@acme.test", -time.Second)
	require.NoError(t, err)

	_, err = tc.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodecRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-one", time.Minute)
	verifier := NewTokenCodec("secret-two", time.Minute)

	raw, err := issuer.Issue("a@acme.test", 0)
	require.NoError(t, err)

	_, err = verifier.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodecRejectsMalformed(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Minute)
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := tc.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestTokenCodecRejectsMissingSubject(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Minute)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tc.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodecRejectsUnsignedAlgorithm(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Minute)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@acme.test",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tc.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenCodecDefaultTTL(t *testing.T) {
	tc := NewTokenCodec("test-secret", 0)
	assert.Equal(t, 30*time.Minute, tc.DefaultTTL)
}
