package entity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// UnsignedTx is a fully resolved transaction envelope, scoped to a single
// submission attempt. Nonce and gas are already bound; the envelope must not
// be reused after submission.
type UnsignedTx struct {
	From     common.Address
	To       common.Address
	Data     []byte
	Value    *big.Int
	Nonce    uint64
	Gas      uint64
	GasPrice *big.Int
	ChainID  *big.Int
}

// TxStatus is the explorer-reported state of a submitted transaction.
type TxStatus string

const (
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
	TxStatusPending TxStatus = "pending"
)
