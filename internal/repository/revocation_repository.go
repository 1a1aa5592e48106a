package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fbafinance/directory-api/internal/model"
)

// RevocationRepo is the append-only ledger of tokens that must no longer be
// accepted.  Membership, not count, is what matters: inserting the same
// token twice is harmless.
type RevocationRepo struct{ DB *sql.DB }

func NewRevocationRepo(db *sql.DB) *RevocationRepo { return &RevocationRepo{DB: db} }

// Insert appends a revocation record for the exact encoded token string.
// expiresAt mirrors the token's own exp claim and exists only so pruning
// can drop records that expiry already makes redundant.
func (r *RevocationRepo) Insert(ctx context.Context, token string, accountID uint64, when, expiresAt time.Time) error {
	rec := model.RevokedToken{
		Token:          token,
		AccountID:      accountID,
		RevokedAt:      when.UTC(),
		TokenExpiresAt: expiresAt.UTC(),
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO revoked_tokens (token, account_id, revoked_at, token_expires_at) VALUES (?,?,?,?)",
		rec.Token, rec.AccountID, rec.RevokedAt, rec.TokenExpiresAt)
	return err
}

// IsRevoked answers the exact-string membership test.  It runs on every
// authenticated request, after signature/expiry checks and before the
// subject lookup is trusted.
func (r *RevocationRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM revoked_tokens WHERE token=?", token).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpiredBefore prunes records whose token had already expired by
// cutoff.  An expired token is rejected by the expiry check alone, so its
// ledger entry carries no information; without pruning the ledger grows
// without bound.
func (r *RevocationRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM revoked_tokens WHERE token_expires_at < ?", cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
