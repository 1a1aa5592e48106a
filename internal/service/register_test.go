package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/utils"
)

func newTestRegistrar() (*Registrar, *memStore) {
	store := newMemStore()
	return NewRegistrar(store, bcrypt.MinCost), store
}

func TestRegisterCreatesAccount(t *testing.T) {
	reg, _ := newTestRegistrar()

	acct, err := reg.Register(context.Background(), RegisterInput{
		BusinessName: "  Acme Co  ",
		Email:        "A@Acme.Test",
		Password:     "GoodPass1",
	})
	require.NoError(t, err)

	assert.NotZero(t, acct.ID)
	assert.Equal(t, "Acme Co", acct.BusinessName)
	assert.Equal(t, "a@acme.test", acct.Email)
	assert.Equal(t, model.KYCUnverified, acct.KYCStatus)
	assert.Nil(t, acct.Industry)
	assert.Nil(t, acct.AnnualRevenue)

	// Stored as a digest, never the plaintext.
	assert.NotEqual(t, "GoodPass1", acct.PasswordHash)
	assert.True(t, utils.VerifyPassword(acct.PasswordHash, "GoodPass1"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	reg, store := newTestRegistrar()

	in := RegisterInput{BusinessName: "Acme Co", Email: "a@acme.test", Password: "GoodPass1"}
	_, err := reg.Register(context.Background(), in)
	require.NoError(t, err)

	in.BusinessName = "Acme Clone"
	_, err = reg.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, store.count())
}

func TestRegisterValidation(t *testing.T) {
	reg, store := newTestRegistrar()

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"empty business name", RegisterInput{BusinessName: "   ", Email: "a@acme.test", Password: "GoodPass1"}, "BusinessName"},
		{"bad email", RegisterInput{BusinessName: "Acme Co", Email: "not-an-email", Password: "GoodPass1"}, "Email"},
		{"too short", RegisterInput{BusinessName: "Acme Co", Email: "a@acme.test", Password: "short1"}, "Password"},
		{"no digit", RegisterInput{BusinessName: "Acme Co", Email: "a@acme.test", Password: "NoDigitsHere"}, "Password"},
		{"no uppercase", RegisterInput{BusinessName: "Acme Co", Email: "a@acme.test", Password: "alllowercase1"}, "Password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Register(context.Background(), tc.in)
			var verr validation.Errors
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr, tc.field)
		})
	}
	assert.Zero(t, store.count())
}

func TestRegisterAcceptsStrongPassword(t *testing.T) {
	reg, _ := newTestRegistrar()
	_, err := reg.Register(context.Background(), RegisterInput{
		BusinessName: "Acme Co",
		Email:        "a@acme.test",
		Password:     "GoodPass1",
	})
	assert.NoError(t, err)
}

func TestRegisterInsertFailureReturnsNoAccount(t *testing.T) {
	reg, store := newTestRegistrar()
	store.failInsert = errors.New("connection refused")

	acct, err := reg.Register(context.Background(), RegisterInput{
		BusinessName: "Acme Co",
		Email:        "a@acme.test",
		Password:     "GoodPass1",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, acct.ID)
	assert.Zero(t, store.count())
}
