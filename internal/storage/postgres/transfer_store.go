package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

// TransferStore implements storage.TransferStore using PostgreSQL.
type TransferStore struct {
	pool *Pool
}

// NewTransferStore creates a new TransferStore.
func NewTransferStore(pool *Pool) *TransferStore {
	return &TransferStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransferStore = (*TransferStore)(nil)

const transferColumns = `
	id, token_id, from_wallet, to_wallet, amount::text, signature, created_at
`

// Insert records a transfer. Returns ErrDuplicateKey if signature exists and
// ErrUnknownToken if token_id does not reference a token.
func (s *TransferStore) Insert(ctx context.Context, in *domain.InsertTransfer) (*domain.TokenTransfer, error) {
	if in == nil {
		return nil, storage.ErrInvalidInput
	}

	query := `
		INSERT INTO token_transfers (
			token_id, from_wallet, to_wallet, amount, signature
		) VALUES ($1, $2, $3, $4::text::numeric, $5)
		RETURNING ` + transferColumns

	row := s.pool.QueryRow(ctx, query,
		in.TokenID,
		in.FromWallet,
		in.ToWallet,
		in.Amount,
		in.Signature,
	)
	t, err := scanTransfer(row)
	if err != nil {
		switch {
		case isDuplicateKeyError(err):
			return nil, storage.ErrDuplicateKey
		case isForeignKeyError(err):
			return nil, storage.ErrUnknownToken
		case isInvalidNumberError(err):
			return nil, fmt.Errorf("%w: amount %q", storage.ErrInvalidInput, in.Amount)
		}
		return nil, fmt.Errorf("insert token transfer: %w", err)
	}
	return t, nil
}

// GetByTokenID retrieves all transfers of a token, ordered by id ASC.
func (s *TransferStore) GetByTokenID(ctx context.Context, tokenID int64) ([]*domain.TokenTransfer, error) {
	query := `SELECT ` + transferColumns + `
		FROM token_transfers
		WHERE token_id = $1
		ORDER BY id ASC
	`
	return s.query(ctx, query, tokenID)
}

// GetByWallet retrieves all transfers sent from or received by wallet, ordered by id ASC.
func (s *TransferStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.TokenTransfer, error) {
	query := `SELECT ` + transferColumns + `
		FROM token_transfers
		WHERE from_wallet = $1 OR to_wallet = $1
		ORDER BY id ASC
	`
	return s.query(ctx, query, wallet)
}

func (s *TransferStore) query(ctx context.Context, query string, args ...any) ([]*domain.TokenTransfer, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query token transfers: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.TokenTransfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token transfer: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token transfers: %w", err)
	}

	return result, nil
}

// scanTransfer scans a single row into TokenTransfer.
func scanTransfer(row pgx.Row) (*domain.TokenTransfer, error) {
	var t domain.TokenTransfer

	err := row.Scan(
		&t.ID,
		&t.TokenID,
		&t.FromWallet,
		&t.ToWallet,
		&t.Amount,
		&t.Signature,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()

	return &t, nil
}
