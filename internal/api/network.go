package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"solana-token-api/internal/domain"
)

// NetworkStatusProvider reports the cluster the service is configured for.
type NetworkStatusProvider interface {
	NetworkStatus(ctx context.Context) (domain.NetworkStatus, error)
}

// StaticNetworkStatus always reports the same payload.
type StaticNetworkStatus domain.NetworkStatus

// NetworkStatus implements NetworkStatusProvider.
func (s StaticNetworkStatus) NetworkStatus(context.Context) (domain.NetworkStatus, error) {
	return domain.NetworkStatus(s), nil
}

func (s *Server) handleNetworkStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.network.NetworkStatus(r.Context())
	if err != nil {
		s.logger.Error("get network status", zap.Error(err))
		writeError(w, s.logger, http.StatusInternalServerError, "Failed to get network status")
		return
	}
	writeJSON(w, s.logger, http.StatusOK, status)
}
