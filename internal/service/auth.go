package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/repository"
	"github.com/fbafinance/directory-api/internal/utils"
)

// ErrInvalidCredentials is returned by Login for both an unknown email and
// a wrong password.  The two causes are deliberately indistinguishable so
// the endpoint cannot be used to enumerate registered addresses.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// ErrUnauthenticated is returned by ResolveCurrentUser for every rejected
// token: malformed, bad signature, expired, revoked, or a subject that no
// longer resolves to an account.  The specific cause is logged server-side
// only.
var ErrUnauthenticated = errors.New("could not validate credentials")

// Token is the login result, shaped like the OAuth2 password-flow response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService orchestrates login, current-user resolution and logout.  It
// holds no mutable state of its own; everything mutable lives behind the
// store interfaces.
type AuthService struct {
	Accounts AccountStore
	Revoked  RevocationStore
	Codec    *utils.TokenCodec
}

func NewAuthService(accounts AccountStore, revoked RevocationStore, codec *utils.TokenCodec) *AuthService {
	return &AuthService{Accounts: accounts, Revoked: revoked, Codec: codec}
}

// Login verifies the credential pair and issues a bearer session token
// bound to the account's email.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	acct, err := s.Accounts.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, fmt.Errorf("login lookup: %w", err)
	}
	if !utils.VerifyPassword(acct.PasswordHash, password) {
		return Token{}, ErrInvalidCredentials
	}
	raw, err := s.Codec.Issue(acct.Email, 0)
	if err != nil {
		return Token{}, fmt.Errorf("issue token: %w", err)
	}
	return Token{AccessToken: raw, TokenType: "bearer"}, nil
}

// ResolveCurrentUser is the gate every protected operation passes through.
// Order matters: signature/expiry first, then the revocation ledger, then
// the subject lookup.  A structurally valid but revoked token must fail
// exactly like an expired one.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, raw string) (model.Account, error) {
	claims, err := s.Codec.Decode(raw)
	if err != nil {
		log.Printf("auth: token rejected: %v", err)
		return model.Account{}, ErrUnauthenticated
	}
	revoked, err := s.Revoked.IsRevoked(ctx, raw)
	if err != nil {
		return model.Account{}, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return model.Account{}, ErrUnauthenticated
	}
	acct, err := s.Accounts.FindByEmail(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Account{}, ErrUnauthenticated
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("subject lookup: %w", err)
	}
	return acct, nil
}

// Logout records the token in the revocation ledger.  The caller must have
// already resolved the token to acct; after Logout returns, the same token
// fails ResolveCurrentUser permanently even while its signature and expiry
// remain valid.
func (s *AuthService) Logout(ctx context.Context, raw string, acct model.Account) error {
	claims, err := s.Codec.Decode(raw)
	if err != nil {
		return ErrUnauthenticated
	}
	if err := s.Revoked.Insert(ctx, raw, acct.ID, time.Now().UTC(), claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
