package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

// TransferStore is an in-memory implementation of storage.TransferStore.
// Neither signature uniqueness nor the token_id reference is checked.
type TransferStore struct {
	mu     sync.RWMutex
	data   map[int64]*domain.TokenTransfer // keyed by id
	nextID int64
	now    func() time.Time
}

// NewTransferStore creates a new in-memory transfer store.
func NewTransferStore() *TransferStore {
	return &TransferStore{
		data:   make(map[int64]*domain.TokenTransfer),
		nextID: 1,
		now:    time.Now,
	}
}

// Insert records a transfer with the next sequential id.
func (s *TransferStore) Insert(_ context.Context, in *domain.InsertTransfer) (*domain.TokenTransfer, error) {
	if in == nil {
		return nil, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	transfer := domain.NewTokenTransfer(id, in, s.now().UTC())
	s.data[id] = transfer

	transferCopy := *transfer
	return &transferCopy, nil
}

// GetByTokenID retrieves all transfers of a token, ordered by id ASC.
func (s *TransferStore) GetByTokenID(_ context.Context, tokenID int64) ([]*domain.TokenTransfer, error) {
	return s.filter(func(t *domain.TokenTransfer) bool {
		return t.TokenID == tokenID
	}), nil
}

// GetByWallet retrieves all transfers sent from or received by wallet, ordered by id ASC.
func (s *TransferStore) GetByWallet(_ context.Context, wallet string) ([]*domain.TokenTransfer, error) {
	return s.filter(func(t *domain.TokenTransfer) bool {
		return t.Involves(wallet)
	}), nil
}

func (s *TransferStore) filter(match func(*domain.TokenTransfer) bool) []*domain.TokenTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TokenTransfer, 0)
	for _, t := range s.data {
		if match(t) {
			transferCopy := *t
			result = append(result, &transferCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Verify interface compliance at compile time.
var _ storage.TransferStore = (*TransferStore)(nil)
