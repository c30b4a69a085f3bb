package postgres

import "solana-token-api/internal/storage"

// NewStores creates the token and transfer stores backed by pool.
func NewStores(pool *Pool) storage.Stores {
	return storage.Stores{
		Tokens:    NewTokenStore(pool),
		Transfers: NewTransferStore(pool),
	}
}
