package user

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests. It enforces the same
// uniqueness rules as the Postgres schema so resolver race behavior can
// be exercised without a database.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		accounts: make(map[int64]*Account),
	}
}

func (s *MemoryStore) FindByProviderIdentity(_ context.Context, provider, providerUserID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if providerUserID == "" {
		return nil, nil
	}
	for _, a := range s.accounts {
		if a.Provider == provider && a.ProviderUserID == providerUserID {
			return copyAccount(a), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return copyAccount(a), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByExternalID(_ context.Context, externalID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ExternalID == externalID {
			return copyAccount(a), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Create(_ context.Context, a *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, a.Email) ||
			existing.Username == a.Username ||
			(a.ProviderUserID != "" &&
				existing.Provider == a.Provider &&
				existing.ProviderUserID == a.ProviderUserID) {
			return nil, ErrDuplicate
		}
	}

	created := copyAccount(a)
	created.ID = s.nextID
	s.nextID++
	now := time.Now()
	created.CreatedAt = now
	created.ModifiedAt = now
	created.Version = 0

	s.accounts[created.ID] = created
	return copyAccount(created), nil
}

func (s *MemoryStore) Update(_ context.Context, a *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[a.ID]
	if !ok || existing.Version != a.Version {
		return nil, ErrVersionConflict
	}

	updated := copyAccount(a)
	updated.CreatedAt = existing.CreatedAt
	updated.ModifiedAt = time.Now()
	updated.Version = existing.Version + 1

	s.accounts[a.ID] = updated
	return copyAccount(updated), nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[id]; ok {
		a.Status = status
		a.ModifiedAt = time.Now()
	}
	return nil
}

func copyAccount(a *Account) *Account {
	clone := *a
	return &clone
}
