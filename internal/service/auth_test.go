package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbafinance/directory-api/internal/utils"
)

func newTestAuth(t *testing.T) (*AuthService, *Registrar, *memStore) {
	t.Helper()
	store := newMemStore()
	codec := utils.NewTokenCodec("unit-test-secret", 30*time.Minute)
	return NewAuthService(store, revocations{store}, codec),
		NewRegistrar(store, bcrypt.MinCost),
		store
}

func register(t *testing.T, reg *Registrar, name, email, password string) {
	t.Helper()
	_, err := reg.Register(context.Background(), RegisterInput{
		BusinessName: name,
		Email:        email,
		Password:     password,
	})
	require.NoError(t, err)
}

func TestRegisterThenLogin(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	claims, err := auth.Codec.Decode(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@acme.test", claims.Subject)
}

func TestLoginEnumerationResistance(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	_, wrongPassword := auth.Login(context.Background(), "a@acme.test", "WrongPass1")
	_, unknownEmail := auth.Login(context.Background(), "nobody@acme.test", "GoodPass1")

	// Wrong password and unknown email must be indistinguishable.
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestResolveCurrentUser(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)

	acct, err := auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@acme.test", acct.Email)
	assert.Equal(t, "Acme Co", acct.BusinessName)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	raw, err := auth.Codec.Issue("a@acme.test", -time.Second)
	require.NoError(t, err)

	_, err = auth.ResolveCurrentUser(context.Background(), raw)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveRejectsUnknownSubject(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	raw, err := auth.Codec.Issue("ghost@acme.test", 0)
	require.NoError(t, err)

	_, err = auth.ResolveCurrentUser(context.Background(), raw)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutRevokesTokenPermanently(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)

	acct, err := auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), tok.AccessToken, acct))

	// Signature and expiry are still individually valid...
	_, err = auth.Codec.Decode(tok.AccessToken)
	require.NoError(t, err)

	// ...but the gate must reject the token from now on, every time.
	for i := 0; i < 3; i++ {
		_, err = auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestLogoutIsIdempotentInEffect(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)
	acct, err := auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), tok.AccessToken, acct))
	require.NoError(t, auth.Logout(context.Background(), tok.AccessToken, acct))

	_, err = auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestConcurrentTokensStayIndependent(t *testing.T) {
	auth, reg, _ := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok1, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)
	tok2, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)
	require.NotEqual(t, tok1.AccessToken, tok2.AccessToken)

	acct, err := auth.ResolveCurrentUser(context.Background(), tok1.AccessToken)
	require.NoError(t, err)
	require.NoError(t, auth.Logout(context.Background(), tok1.AccessToken, acct))

	// Revoking one session leaves the other usable.
	_, err = auth.ResolveCurrentUser(context.Background(), tok1.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = auth.ResolveCurrentUser(context.Background(), tok2.AccessToken)
	assert.NoError(t, err)
}

func TestResolveSurfacesLedgerFailure(t *testing.T) {
	auth, reg, store := newTestAuth(t)
	register(t, reg, "Acme Co", "a@acme.test", "GoodPass1")

	tok, err := auth.Login(context.Background(), "a@acme.test", "GoodPass1")
	require.NoError(t, err)

	store.failIsRevoked = errors.New("connection refused")
	_, err = auth.ResolveCurrentUser(context.Background(), tok.AccessToken)
	require.Error(t, err)
	// A store outage is a server fault, not an auth failure.
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
