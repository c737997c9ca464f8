package entity

import "time"

// NetworkSettings holds the resolved chain-access parameters for one network.
// Created once at startup from configuration and read-only afterwards.
type NetworkSettings struct {
	IsTestnet  bool
	RPCURL     string
	RPCTimeout time.Duration // per-attempt bound for every RPC interaction
	MaxRetries int           // total attempt budget for transient failures
	RetryDelay time.Duration // fixed delay between attempts
	RateLimit  int           // sustained RPC requests per second (0 = unlimited)
	RateBurst  int
}

// NetworkName returns the human-readable name of the selected network.
func (s NetworkSettings) NetworkName() string {
	if s.IsTestnet {
		return "coston2"
	}
	return "flare"
}
