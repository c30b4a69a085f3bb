package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
//
// mint_address uniqueness is declared by the schema but not checked here:
// inserting a second token with the same mint succeeds, and GetByMint
// returns the earliest one.
type TokenStore struct {
	mu     sync.RWMutex
	data   map[int64]*domain.Token // keyed by id
	nextID int64
	now    func() time.Time
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		data:   make(map[int64]*domain.Token),
		nextID: 1,
		now:    time.Now,
	}
}

// Insert creates a token with the next sequential id.
func (s *TokenStore) Insert(_ context.Context, in *domain.InsertToken) (*domain.Token, error) {
	if in == nil {
		return nil, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	token := domain.NewToken(id, in, s.now().UTC())
	s.data[id] = token
	return token.Clone(), nil
}

// GetByCreator retrieves all tokens created by wallet, ordered by id ASC.
func (s *TokenStore) GetByCreator(_ context.Context, wallet string) ([]*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Token, 0)
	for _, t := range s.data {
		if t.CreatorWallet == wallet {
			result = append(result, t.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetByMint retrieves the first token with the given mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(_ context.Context, mint string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.Token
	for _, t := range s.data {
		if t.MintAddress == mint && (found == nil || t.ID < found.ID) {
			found = t
		}
	}

	if found == nil {
		return nil, storage.ErrNotFound
	}
	return found.Clone(), nil
}

// Verify interface compliance at compile time.
var _ storage.TokenStore = (*TokenStore)(nil)
