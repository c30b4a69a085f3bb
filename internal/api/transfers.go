package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/schema"
	"solana-token-api/internal/storage"
)

func (s *Server) handleGetTransfersByWallet(w http.ResponseWriter, r *http.Request) {
	wallet := mux.Vars(r)["walletAddress"]

	transfers, err := s.transfers.GetByWallet(r.Context(), wallet)
	if err != nil {
		s.storageError("get_transfers_by_wallet", err, zap.String("wallet", wallet))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to fetch transfers")
		return
	}
	writeTransfers(w, s.logger, transfers)
}

func (s *Server) handleGetTransfersByMint(w http.ResponseWriter, r *http.Request) {
	mint := mux.Vars(r)["mintAddress"]

	token, err := s.tokens.GetByMint(r.Context(), mint)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, s.logger, http.StatusNotFound, "Token not found")
		return
	}
	if err != nil {
		s.storageError("get_token_by_mint", err, zap.String("mint", mint))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to fetch transfers")
		return
	}

	transfers, err := s.transfers.GetByTokenID(r.Context(), token.ID)
	if err != nil {
		s.storageError("get_transfers_by_token", err, zap.Int64("token_id", token.ID))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to fetch transfers")
		return
	}
	writeTransfers(w, s.logger, transfers)
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(w, r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "Invalid transfer data")
		return
	}

	in, err := schema.ValidateInsertTransfer(body)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, s.logger, "Invalid transfer data", verr)
			return
		}
		writeError(w, s.logger, http.StatusBadRequest, "Invalid transfer data")
		return
	}

	transfer, err := s.transfers.Insert(r.Context(), in)
	switch {
	case errors.Is(err, storage.ErrUnknownToken):
		writeError(w, s.logger, http.StatusBadRequest, "Unknown token")
		return
	case errors.Is(err, storage.ErrDuplicateKey):
		writeError(w, s.logger, http.StatusConflict, "Transfer already recorded")
		return
	case errors.Is(err, storage.ErrInvalidInput):
		writeError(w, s.logger, http.StatusBadRequest, "Invalid transfer data")
		return
	case err != nil:
		s.storageError("create_transfer", err, zap.String("signature", in.Signature))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to record transfer")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordTransferRecorded()
	}
	s.feed.TransferRecorded(transfer)
	s.logger.Info("transfer recorded", zap.Int64("id", transfer.ID), zap.Int64("token_id", transfer.TokenID))

	writeJSON(w, s.logger, http.StatusCreated, transfer)
}

func writeTransfers(w http.ResponseWriter, logger *zap.Logger, transfers []*domain.TokenTransfer) {
	if transfers == nil {
		transfers = []*domain.TokenTransfer{}
	}
	writeJSON(w, logger, http.StatusOK, transfers)
}
