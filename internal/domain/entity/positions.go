package entity

import "math/big"

// ProtocolPosition is one protocol's token balance for a wallet. Error is set
// (and Balance nil) when that protocol's read failed; other positions in the
// same report are unaffected.
type ProtocolPosition struct {
	Protocol  string   `json:"protocol"`
	Symbol    string   `json:"symbol"`
	Balance   *big.Int `json:"balance,omitempty"`
	Formatted string   `json:"formatted,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// PositionsReport aggregates the per-protocol positions of one wallet.
type PositionsReport struct {
	Address   string             `json:"address"`
	Network   string             `json:"network"`
	Positions []ProtocolPosition `json:"positions"`
}
