package connector

import (
	"fmt"
	"sort"

	"flarekit/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const stargateProtocol = "stargate"

// FlareEndpointID is the LayerZero v2 endpoint identifier of Flare mainnet.
const FlareEndpointID = uint32(30295)

// chainEndpoints maps the external chains Stargate can bridge to from Flare
// onto their LayerZero v2 endpoint identifiers.
var chainEndpoints = map[string]uint32{
	"ethereum":  30101,
	"bnb_chain": 30102,
	"avalanche": 30106,
	"polygon":   30109,
	"arbitrum":  30110,
	"optimism":  30111,
	"mantle":    30181,
	"linea":     30183,
	"base":      30184,
	"scroll":    30214,
}

// Stargate exposes the static routing facts of the Stargate bridge on Flare:
// OFT token addresses, supported destination chains and their endpoint ids.
// It performs no chain reads.
type Stargate struct {
	tokenMessaging common.Address
	treasurer      common.Address
	ofts           map[string]common.Address
	log            *zap.Logger
}

// NewStargate validates the bridge addresses for the active network.
func NewStargate(book entity.AddressBook, logger *zap.Logger) (*Stargate, error) {
	required := []struct {
		name string
		addr common.Address
	}{
		{"token messaging", book.StargateTokenMessaging},
		{"treasurer", book.StargateTreasurer},
		{"ETH OFT", book.StargateETHOFT},
		{"USDC OFT", book.StargateUSDCOFT},
		{"USDT OFT", book.StargateUSDTOFT},
	}
	for _, r := range required {
		if err := requireAddress(stargateProtocol, r.name, r.addr); err != nil {
			return nil, err
		}
	}
	return &Stargate{
		tokenMessaging: book.StargateTokenMessaging,
		treasurer:      book.StargateTreasurer,
		ofts: map[string]common.Address{
			"ETH":  book.StargateETHOFT,
			"USDC": book.StargateUSDCOFT,
			"USDT": book.StargateUSDTOFT,
		},
		log: logger.Named("StargateConnector"),
	}, nil
}

func (s *Stargate) Protocol() string { return stargateProtocol }

// OFTAddress returns the Omnichain Fungible Token contract for a bridgeable
// token symbol.
func (s *Stargate) OFTAddress(token string) (common.Address, error) {
	addr, ok := s.ofts[token]
	if !ok {
		return common.Address{}, &entity.ProtocolError{
			Protocol: stargateProtocol,
			Op:       "oftAddress",
			Err:      fmt.Errorf("token %q is not bridgeable through Stargate on Flare", token),
		}
	}
	return addr, nil
}

// ChainEndpoint returns the LayerZero endpoint id of a destination chain.
func (s *Stargate) ChainEndpoint(chain string) (uint32, error) {
	id, ok := chainEndpoints[chain]
	if !ok {
		return 0, &entity.ProtocolError{
			Protocol: stargateProtocol,
			Op:       "chainEndpoint",
			Err:      fmt.Errorf("chain %q is not a Stargate destination from Flare", chain),
		}
	}
	return id, nil
}

// SupportedTokens lists the bridgeable token symbols, sorted.
func (s *Stargate) SupportedTokens() []string {
	tokens := make([]string, 0, len(s.ofts))
	for t := range s.ofts {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// SupportedChains lists the reachable destination chains, sorted.
func (s *Stargate) SupportedChains() []string {
	chains := make([]string, 0, len(chainEndpoints))
	for c := range chainEndpoints {
		chains = append(chains, c)
	}
	sort.Strings(chains)
	return chains
}

// BridgeInfo assembles the full static routing picture for API consumers.
func (s *Stargate) BridgeInfo(network string) entity.BridgeInfo {
	return entity.BridgeInfo{
		Network:         network,
		EndpointID:      FlareEndpointID,
		TokenMessaging:  s.tokenMessaging.Hex(),
		Treasurer:       s.treasurer.Hex(),
		SupportedTokens: s.SupportedTokens(),
		SupportedChains: s.SupportedChains(),
	}
}
