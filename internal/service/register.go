package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/repository"
	"github.com/fbafinance/directory-api/internal/utils"
)

// ErrDuplicateEmail is returned when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// RegisterInput is the signup request after trimming.
type RegisterInput struct {
	BusinessName string
	Email        string
	Password     string
}

// Validate enforces the signup rules: non-empty name, well-formed email,
// and a password of at least 8 characters with a digit and an uppercase
// letter.  Failures come back as validation.Errors keyed by field.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BusinessName, validation.Required.Error("business name must not be empty")),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password,
			validation.Required,
			validation.Length(8, 0).Error("must be at least 8 characters long"),
			validation.By(passwordStrength),
		),
	)
}

func passwordStrength(v interface{}) error {
	s, _ := v.(string)
	var digit, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if !digit {
		return errors.New("must contain at least one digit")
	}
	if !upper {
		return errors.New("must contain at least one uppercase letter")
	}
	return nil
}

// Registrar implements signup: validate, uniqueness check, hash, persist,
// return the stored account.  The password hash happens before the insert;
// if the insert then fails, the error propagates and no account exists, so
// there is no half-applied state to clean up.
type Registrar struct {
	Accounts   AccountStore
	BcryptCost int
}

func NewRegistrar(accounts AccountStore, bcryptCost int) *Registrar {
	return &Registrar{Accounts: accounts, BcryptCost: bcryptCost}
}

// Register creates a new account.  The pre-insert lookup gives a friendly
// error on the common case; the storage layer's unique index is what makes
// the race with a concurrent identical signup safe, surfacing as
// ErrDuplicateEmail either way.
func (r *Registrar) Register(ctx context.Context, in RegisterInput) (model.Account, error) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.Validate(); err != nil {
		return model.Account{}, err
	}

	_, err := r.Accounts.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return model.Account{}, ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return model.Account{}, fmt.Errorf("uniqueness check: %w", err)
	}

	hash, err := utils.HashPassword(in.Password, r.BcryptCost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}

	acct, err := r.Accounts.Insert(ctx, model.AccountDraft{
		BusinessName: in.BusinessName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrEmailExists) {
		return model.Account{}, ErrDuplicateEmail
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return acct, nil
}
