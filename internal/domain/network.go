package domain

// NetworkStatus describes the Solana cluster the service is configured for.
// It is static configuration, not a live health check.
type NetworkStatus struct {
	Network     string `json:"network"`
	Status      string `json:"status"`
	RPCEndpoint string `json:"rpcEndpoint"`
}

// DefaultNetworkStatus is reported when no cluster is configured.
var DefaultNetworkStatus = NetworkStatus{
	Network:     "devnet",
	Status:      "connected",
	RPCEndpoint: "https://api.devnet.solana.com",
}
