package domain

import "time"

// TokenTransfer represents a recorded transfer of a token between wallets.
// Corresponds to token_transfers table in PostgreSQL.
type TokenTransfer struct {
	ID         int64     `json:"id"`         // SERIAL primary key
	TokenID    int64     `json:"tokenId"`    // FK to tokens.id
	FromWallet string    `json:"fromWallet"` // sender wallet
	ToWallet   string    `json:"toWallet"`   // recipient wallet
	Amount     string    `json:"amount"`     // NUMERIC(20,9) kept as decimal string
	Signature  string    `json:"signature"`  // transaction signature (UNIQUE)
	CreatedAt  time.Time `json:"createdAt"`  // set by storage
}

// InsertTransfer holds the client-supplied fields of a TokenTransfer.
type InsertTransfer struct {
	TokenID    int64
	FromWallet string
	ToWallet   string
	Amount     string
	Signature  string
}

// NewTokenTransfer builds a full TokenTransfer from an insert shape.
func NewTokenTransfer(id int64, in *InsertTransfer, createdAt time.Time) *TokenTransfer {
	return &TokenTransfer{
		ID:         id,
		TokenID:    in.TokenID,
		FromWallet: in.FromWallet,
		ToWallet:   in.ToWallet,
		Amount:     in.Amount,
		Signature:  in.Signature,
		CreatedAt:  createdAt,
	}
}

// Involves reports whether wallet is the sender or the recipient.
func (t *TokenTransfer) Involves(wallet string) bool {
	return t.FromWallet == wallet || t.ToWallet == wallet
}
