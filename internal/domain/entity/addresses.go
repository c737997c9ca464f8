package entity

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AddressBook holds the checksum contract addresses of every supported
// protocol on a single network. A zero address means "not deployed /
// not configured" and is only legal on testnet (and for the optional
// document registry).
type AddressBook struct {
	SparkDEXUniversalRouter common.Address
	SparkDEXSwapRouter      common.Address
	KineticComptroller      common.Address
	KineticKSFLR            common.Address
	SceptreSFLR             common.Address
	CycloCySFLRVault        common.Address
	CycloCySFLRReceipt      common.Address
	FirelightStXRPVault     common.Address
	StargateTokenMessaging  common.Address
	StargateTreasurer       common.Address
	StargateETHOFT          common.Address
	StargateUSDCOFT         common.Address
	StargateUSDTOFT         common.Address

	// DocumentRegistry has no canonical mainnet deployment and is excluded
	// from Validate; the ingestion poster rejects a zero address at first use.
	DocumentRegistry common.Address
}

// Validate checks that every protocol address is populated. Called on the
// mainnet table at load time so a partial table fails fast instead of at
// first use.
func (b AddressBook) Validate() error {
	required := []struct {
		name string
		addr common.Address
	}{
		{"sparkdexUniversalRouter", b.SparkDEXUniversalRouter},
		{"sparkdexSwapRouter", b.SparkDEXSwapRouter},
		{"kineticComptroller", b.KineticComptroller},
		{"kineticKsflr", b.KineticKSFLR},
		{"sceptreSflr", b.SceptreSFLR},
		{"cycloCysflrVault", b.CycloCySFLRVault},
		{"cycloCysflrReceipt", b.CycloCySFLRReceipt},
		{"firelightStxrpVault", b.FirelightStXRPVault},
		{"stargateTokenMessaging", b.StargateTokenMessaging},
		{"stargateTreasurer", b.StargateTreasurer},
		{"stargateEthOft", b.StargateETHOFT},
		{"stargateUsdcOft", b.StargateUSDCOFT},
		{"stargateUsdtOft", b.StargateUSDTOFT},
	}
	for _, f := range required {
		if f.addr == (common.Address{}) {
			return &ConfigError{Reason: fmt.Sprintf("contract address %q must be set for mainnet", f.name)}
		}
	}
	return nil
}

// Contracts pairs the address tables of the two supported networks.
// Exactly one table is authoritative per process, selected by IsTestnet.
type Contracts struct {
	Flare   AddressBook
	Coston2 AddressBook
}

// Active returns the authoritative table for the selected network.
func (c Contracts) Active(isTestnet bool) AddressBook {
	if isTestnet {
		return c.Coston2
	}
	return c.Flare
}

// DefaultMainnetAddresses returns the known Flare mainnet deployments.
func DefaultMainnetAddresses() AddressBook {
	return AddressBook{
		SparkDEXUniversalRouter: common.HexToAddress("0x0f3D8a38D4c74afBebc2c42695642f0e3acb15D3"),
		SparkDEXSwapRouter:      common.HexToAddress("0x8a1E35F5c98C4E85B36B7B253222eE17773b2781"),
		KineticComptroller:      common.HexToAddress("0xeC7e541375D70c37262f619162502dB9131d6db5"),
		KineticKSFLR:            common.HexToAddress("0x291487beC339c2fE5D83DD45F0a15EFC9Ac45656"),
		SceptreSFLR:             common.HexToAddress("0x12e605bc104e93B45e1aD99F9e555f659051c2BB"),
		CycloCySFLRVault:        common.HexToAddress("0x19831cfB53A0dbeAD9866C43557C1D48DfF76567"),
		CycloCySFLRReceipt:      common.HexToAddress("0xd387FC43E19a63036d8FCeD559E81f5dDeF7ef09"),
		FirelightStXRPVault:     common.HexToAddress("0x4C18Ff3C89632c3Dd62E796c0aFA5c07c4c1B2b3"),
		StargateTokenMessaging:  common.HexToAddress("0x45d417612e177672958dC0537C45a8f8d754Ac2E"),
		StargateTreasurer:       common.HexToAddress("0x090194F1EEDc134A680e3b488aBB2D212dba8c01"),
		StargateETHOFT:          common.HexToAddress("0x8e8539e4CcD69123c623a106773F2b0cbbc58746"),
		StargateUSDCOFT:         common.HexToAddress("0x77C71633C34C3784ede189d74223122422492a0f"),
		StargateUSDTOFT:         common.HexToAddress("0x1C10CC06DC6D35970d1D53B2A23c76ef370d4135"),
	}
}
