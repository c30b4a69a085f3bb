package storage

import (
	"context"

	"solana-token-api/internal/domain"
)

// TokenStore provides access to tokens storage.
type TokenStore interface {
	// Insert creates a token from its insert shape, assigning the next id,
	// filling defaults and stamping created_at. Returns the stored record.
	Insert(ctx context.Context, in *domain.InsertToken) (*domain.Token, error)

	// GetByCreator retrieves all tokens created by wallet, ordered by id ASC.
	GetByCreator(ctx context.Context, wallet string) ([]*domain.Token, error)

	// GetByMint retrieves the token with the given mint address. Returns ErrNotFound if not exists.
	GetByMint(ctx context.Context, mint string) (*domain.Token, error)
}

// TransferStore provides access to token_transfers storage.
type TransferStore interface {
	// Insert records a transfer from its insert shape, assigning the next id
	// and stamping created_at. Returns the stored record.
	Insert(ctx context.Context, in *domain.InsertTransfer) (*domain.TokenTransfer, error)

	// GetByTokenID retrieves all transfers of a token, ordered by id ASC.
	GetByTokenID(ctx context.Context, tokenID int64) ([]*domain.TokenTransfer, error)

	// GetByWallet retrieves all transfers sent from or received by wallet, ordered by id ASC.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.TokenTransfer, error)
}

// Stores bundles the stores handed to the API layer.
type Stores struct {
	Tokens    TokenStore
	Transfers TransferStore
}
