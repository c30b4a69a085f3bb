package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

const tokenColumns = `
	id, name, symbol, mint_address, decimals, initial_supply::text,
	description, creator_wallet, created_at
`

// Insert creates a token. Returns ErrDuplicateKey if mint_address exists.
func (s *TokenStore) Insert(ctx context.Context, in *domain.InsertToken) (*domain.Token, error) {
	if in == nil {
		return nil, storage.ErrInvalidInput
	}

	decimals := domain.DefaultDecimals
	if in.Decimals != nil {
		decimals = *in.Decimals
	}

	query := `
		INSERT INTO tokens (
			name, symbol, mint_address, decimals, initial_supply, description, creator_wallet
		) VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7)
		RETURNING ` + tokenColumns

	row := s.pool.QueryRow(ctx, query,
		in.Name,
		in.Symbol,
		in.MintAddress,
		decimals,
		in.InitialSupply,
		in.Description,
		in.CreatorWallet,
	)
	t, err := scanToken(row)
	if err != nil {
		switch {
		case isDuplicateKeyError(err):
			return nil, storage.ErrDuplicateKey
		case isInvalidNumberError(err):
			return nil, fmt.Errorf("%w: initial supply %q", storage.ErrInvalidInput, in.InitialSupply)
		}
		return nil, fmt.Errorf("insert token: %w", err)
	}
	return t, nil
}

// GetByCreator retrieves all tokens created by wallet, ordered by id ASC.
func (s *TokenStore) GetByCreator(ctx context.Context, wallet string) ([]*domain.Token, error) {
	query := `SELECT ` + tokenColumns + `
		FROM tokens
		WHERE creator_wallet = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("query tokens by creator: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.Token, 0)
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}

	return result, nil
}

// GetByMint retrieves the token with the given mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(ctx context.Context, mint string) (*domain.Token, error) {
	query := `SELECT ` + tokenColumns + `
		FROM tokens
		WHERE mint_address = $1
		ORDER BY id ASC
		LIMIT 1
	`

	row := s.pool.QueryRow(ctx, query, mint)
	t, err := scanToken(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token by mint: %w", err)
	}
	return t, nil
}

// scanToken scans a single row into Token.
func scanToken(row pgx.Row) (*domain.Token, error) {
	var t domain.Token

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Symbol,
		&t.MintAddress,
		&t.Decimals,
		&t.InitialSupply,
		&t.Description,
		&t.CreatorWallet,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()

	return &t, nil
}
