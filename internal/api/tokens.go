package api

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/schema"
	"solana-token-api/internal/storage"
)

const maxBodyBytes = 1 << 20

// readJSONBody returns the request body, or an empty object when the
// request is not declared as application/json.
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return []byte("{}"), nil
	}
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) handleGetTokensByWallet(w http.ResponseWriter, r *http.Request) {
	wallet := mux.Vars(r)["walletAddress"]

	tokens, err := s.tokens.GetByCreator(r.Context(), wallet)
	if err != nil {
		s.storageError("get_tokens_by_wallet", err, zap.String("wallet", wallet))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to fetch tokens")
		return
	}
	if tokens == nil {
		tokens = []*domain.Token{}
	}
	writeJSON(w, s.logger, http.StatusOK, tokens)
}

func (s *Server) handleGetTokenByMint(w http.ResponseWriter, r *http.Request) {
	mint := mux.Vars(r)["mintAddress"]

	token, err := s.tokens.GetByMint(r.Context(), mint)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, s.logger, http.StatusNotFound, "Token not found")
		return
	}
	if err != nil {
		s.storageError("get_token_by_mint", err, zap.String("mint", mint))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to fetch token")
		return
	}
	writeJSON(w, s.logger, http.StatusOK, token)
}

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(w, r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "Invalid token data")
		return
	}

	in, err := schema.ValidateInsertToken(body)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, s.logger, "Invalid token data", verr)
			return
		}
		writeError(w, s.logger, http.StatusBadRequest, "Invalid token data")
		return
	}

	token, err := s.tokens.Insert(r.Context(), in)
	switch {
	case errors.Is(err, storage.ErrDuplicateKey):
		writeError(w, s.logger, http.StatusConflict, "Token already exists")
		return
	case errors.Is(err, storage.ErrInvalidInput):
		writeError(w, s.logger, http.StatusBadRequest, "Invalid token data")
		return
	case err != nil:
		s.storageError("create_token", err, zap.String("mint", in.MintAddress))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to create token")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordTokenCreated()
	}
	s.feed.TokenCreated(token)
	s.logger.Info("token created", zap.Int64("id", token.ID), zap.String("mint", token.MintAddress))

	writeJSON(w, s.logger, http.StatusCreated, token)
}

// storageError logs a failed store call and counts it.
func (s *Server) storageError(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	s.logger.Error("storage call failed", fields...)
	if s.metrics != nil {
		s.metrics.RecordStorageError(operation)
	}
}
