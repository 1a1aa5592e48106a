package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fbafinance/directory-api/internal/model"
	"github.com/fbafinance/directory-api/internal/repository"
)

// memStore is an in-memory AccountStore + RevocationStore with the same
// contract as the MySQL repositories: normalized emails, ErrNotFound /
// ErrEmailExists sentinels, uniqueness enforced on insert.  The fail*
// fields let tests simulate an unavailable store.
type memStore struct {
	mu      sync.Mutex
	nextID  uint64
	byEmail map[string]model.Account
	revoked map[string]bool

	failInsert    error
	failIsRevoked error
	failFind      error
}

func newMemStore() *memStore {
	return &memStore{
		byEmail: map[string]model.Account{},
		revoked: map[string]bool{},
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *memStore) FindByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFind != nil {
		return model.Account{}, s.failFind
	}
	a, ok := s.byEmail[normalize(email)]
	if !ok {
		return model.Account{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *memStore) FindByID(_ context.Context, id uint64) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (s *memStore) Insert(_ context.Context, d model.AccountDraft) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert != nil {
		return model.Account{}, s.failInsert
	}
	email := normalize(d.Email)
	if _, exists := s.byEmail[email]; exists {
		return model.Account{}, repository.ErrEmailExists
	}
	s.nextID++
	a := model.Account{
		ID:           s.nextID,
		BusinessName: d.BusinessName,
		Email:        email,
		PasswordHash: d.PasswordHash,
		KYCStatus:    model.KYCUnverified,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[email] = a
	return a, nil
}

func (s *memStore) InsertRevocation(_ context.Context, token string, _ uint64, _, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byEmail)
}

func (s *memStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIsRevoked != nil {
		return false, s.failIsRevoked
	}
	return s.revoked[token], nil
}

// revocations adapts memStore to the RevocationStore interface.
type revocations struct{ *memStore }

func (r revocations) Insert(ctx context.Context, token string, accountID uint64, when, expiresAt time.Time) error {
	return r.InsertRevocation(ctx, token, accountID, when, expiresAt)
}
