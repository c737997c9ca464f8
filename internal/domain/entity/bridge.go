package entity

// BridgeInfo describes the Stargate bridging surface available on the
// selected network.
type BridgeInfo struct {
	Network         string   `json:"network"`
	EndpointID      uint32   `json:"endpointId"`
	TokenMessaging  string   `json:"tokenMessaging"`
	Treasurer       string   `json:"treasurer"`
	SupportedTokens []string `json:"supportedTokens"`
	SupportedChains []string `json:"supportedChains"`
}
