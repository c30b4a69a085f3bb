package memory

import "solana-token-api/internal/storage"

// NewStores creates an empty in-memory token and transfer store pair.
func NewStores() storage.Stores {
	return storage.Stores{
		Tokens:    NewTokenStore(),
		Transfers: NewTransferStore(),
	}
}
