// Package service holds the authentication core: credential verification,
// token issuance, token validation with revocation checking, and signup.
// It depends on the record store only through the narrow interfaces below,
// so tests run against an in-memory fake and the HTTP layer stays on top.
package service

import (
	"context"
	"time"

	"github.com/fbafinance/directory-api/internal/model"
)

// AccountStore is the credential-store contract the core needs.  The MySQL
// AccountRepo satisfies it.  Implementations return repository.ErrNotFound
// for missing rows and repository.ErrEmailExists on a duplicate insert, and
// must enforce email uniqueness at the storage layer; the pre-insert check
// in Register is advisory, not the guarantee.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	FindByID(ctx context.Context, id uint64) (model.Account, error)
	Insert(ctx context.Context, draft model.AccountDraft) (model.Account, error)
}

// RevocationStore is the revocation-ledger contract.  Insert is append-only
// and tolerates duplicates; IsRevoked is an exact-string membership test.
type RevocationStore interface {
	Insert(ctx context.Context, token string, accountID uint64, when, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
