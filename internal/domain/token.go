package domain

import "time"

// DefaultDecimals is applied when a token is created without explicit decimals.
const DefaultDecimals = 9

// Token represents a registered SPL token.
// Corresponds to tokens table in PostgreSQL.
type Token struct {
	ID            int64     `json:"id"`            // SERIAL primary key
	Name          string    `json:"name"`          // display name
	Symbol        string    `json:"symbol"`        // ticker
	MintAddress   string    `json:"mintAddress"`   // mint account address (UNIQUE)
	Decimals      int       `json:"decimals"`      // token decimals, default 9
	InitialSupply string    `json:"initialSupply"` // NUMERIC(20,0) kept as decimal string
	Description   *string   `json:"description"`   // nullable
	CreatorWallet string    `json:"creatorWallet"` // wallet that created the token
	CreatedAt     time.Time `json:"createdAt"`     // set by storage
}

// InsertToken holds the client-supplied fields of a Token.
// ID and CreatedAt are assigned by storage; Decimals and Description are
// optional and filled with defaults on insert.
type InsertToken struct {
	Name          string
	Symbol        string
	MintAddress   string
	Decimals      *int
	InitialSupply string
	Description   *string
	CreatorWallet string
}

// NewToken builds a full Token from an insert shape, filling defaults.
func NewToken(id int64, in *InsertToken, createdAt time.Time) *Token {
	decimals := DefaultDecimals
	if in.Decimals != nil {
		decimals = *in.Decimals
	}

	var description *string
	if in.Description != nil {
		d := *in.Description
		description = &d
	}

	return &Token{
		ID:            id,
		Name:          in.Name,
		Symbol:        in.Symbol,
		MintAddress:   in.MintAddress,
		Decimals:      decimals,
		InitialSupply: in.InitialSupply,
		Description:   description,
		CreatorWallet: in.CreatorWallet,
		CreatedAt:     createdAt,
	}
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}
