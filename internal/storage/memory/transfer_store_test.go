package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

func newInsertTransfer(tokenID int64, from, to, sig string) *domain.InsertTransfer {
	return &domain.InsertTransfer{
		TokenID:    tokenID,
		FromWallet: from,
		ToWallet:   to,
		Amount:     "10",
		Signature:  sig,
	}
}

func TestTransferStore_InsertAndGetByTokenID(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	before := time.Now()
	transfer, err := store.Insert(ctx, newInsertTransfer(1, "WalletA", "WalletB", "Sig1"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if transfer.ID != 1 {
		t.Errorf("ID mismatch: got %d, want 1", transfer.ID)
	}
	if transfer.CreatedAt.Before(before) {
		t.Errorf("CreatedAt %v is before call time %v", transfer.CreatedAt, before)
	}

	if _, err := store.Insert(ctx, newInsertTransfer(2, "WalletA", "WalletC", "Sig2")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByTokenID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByTokenID failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 transfer, got %d", len(result))
	}
	if result[0].Signature != "Sig1" {
		t.Errorf("Signature mismatch: got %s, want Sig1", result[0].Signature)
	}
}

func TestTransferStore_MonotonicIDs(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		transfer, err := store.Insert(ctx, newInsertTransfer(1, "A", "B", "sig"))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if transfer.ID != last+1 {
			t.Errorf("Expected id %d, got %d", last+1, transfer.ID)
		}
		last = transfer.ID
	}
}

func TestTransferStore_GetByWallet(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	inputs := []*domain.InsertTransfer{
		newInsertTransfer(1, "WalletA", "WalletB", "Sig1"), // out of A
		newInsertTransfer(1, "WalletC", "WalletA", "Sig2"), // into A
		newInsertTransfer(1, "WalletB", "WalletC", "Sig3"), // unrelated
	}
	for _, in := range inputs {
		if _, err := store.Insert(ctx, in); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.GetByWallet(ctx, "WalletA")
	if err != nil {
		t.Fatalf("GetByWallet failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 transfers, got %d", len(result))
	}
	if result[0].Signature != "Sig1" || result[1].Signature != "Sig2" {
		t.Errorf("Unexpected transfers: %s, %s", result[0].Signature, result[1].Signature)
	}

	result, _ = store.GetByWallet(ctx, "WalletD")
	if len(result) != 0 {
		t.Errorf("Expected no transfers for WalletD, got %d", len(result))
	}
}

func TestTransferStore_SelfTransferListedOnce(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	if _, err := store.Insert(ctx, newInsertTransfer(1, "WalletA", "WalletA", "Sig1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, _ := store.GetByWallet(ctx, "WalletA")
	if len(result) != 1 {
		t.Errorf("Expected 1 transfer, got %d", len(result))
	}
}

func TestTransferStore_DuplicateSignatureAndDanglingTokenAccepted(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	if _, err := store.Insert(ctx, newInsertTransfer(999, "A", "B", "dup")); err != nil {
		t.Fatalf("Insert with unknown token should succeed, got %v", err)
	}
	if _, err := store.Insert(ctx, newInsertTransfer(999, "A", "B", "dup")); err != nil {
		t.Fatalf("Insert with duplicate signature should succeed, got %v", err)
	}

	result, _ := store.GetByTokenID(ctx, 999)
	if len(result) != 2 {
		t.Errorf("Expected 2 transfers, got %d", len(result))
	}
}

func TestTransferStore_InvalidInput(t *testing.T) {
	store := NewTransferStore()

	_, err := store.Insert(context.Background(), nil)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
}

func TestTransferStore_ReturnsCopy(t *testing.T) {
	store := NewTransferStore()
	ctx := context.Background()

	transfer, err := store.Insert(ctx, newInsertTransfer(1, "A", "B", "Sig1"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	transfer.Amount = "0"

	result, _ := store.GetByTokenID(ctx, 1)
	if result[0].Amount != "10" {
		t.Error("Store should return copy, not reference")
	}
}

func TestTransferStore_CreatedAtIsUTC(t *testing.T) {
	store := NewTransferStore()
	store.now = func() time.Time { return time.Date(2026, 10, 19, 8, 15, 1, 0, time.FixedZone("JST", 9*60*60)) }

	transfer, err := store.Insert(context.Background(), newInsertTransfer(1, "WalletA", "WalletB", "Sig1"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if transfer.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location: got %v, want UTC", transfer.CreatedAt.Location())
	}
	if got := transfer.CreatedAt.Format(time.RFC3339Nano); got != "2026-10-18T23:15:01Z" {
		t.Errorf("CreatedAt mismatch: got %s", got)
	}
}
