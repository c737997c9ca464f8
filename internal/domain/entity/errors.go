package entity

import "fmt"

// ConfigError reports missing or invalid configuration (network selection,
// account credential, contract address tables). It is raised at construction
// time and is never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// RPCError reports a failure talking to the JSON-RPC node after the retry
// policy has been exhausted (or a non-transient node response). The original
// node error is preserved in Err.
type RPCError struct {
	Op  string // JSON-RPC method that failed, e.g. "eth_call"
	Err error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error on %s: %v", e.Op, e.Err)
}

func (e *RPCError) Unwrap() error { return e.Err }

// TxBuildError reports a failure assembling an unsigned transaction: missing
// credential, calldata packing, gas estimation (which usually means the
// underlying call would revert) or nonce acquisition. Not retried beyond the
// per-RPC policy already applied inside the build.
type TxBuildError struct {
	Reason string
	Err    error
}

func (e *TxBuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transaction build failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transaction build failed: %s", e.Reason)
}

func (e *TxBuildError) Unwrap() error { return e.Err }

// TxSendError reports a broadcast rejection (bad nonce, insufficient funds,
// underpriced) or a signing failure. Never retried: a timed-out broadcast may
// still have reached the mempool and a blind retry could double-submit.
type TxSendError struct {
	Reason string
	Err    error
}

func (e *TxSendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transaction send failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transaction send failed: %s", e.Reason)
}

func (e *TxSendError) Unwrap() error { return e.Err }

// ProtocolError tags a chain-client failure with the protocol connector it
// came from. The underlying error kind is preserved unchanged for errors.As
// so callers can still distinguish RPC vs build vs send failures.
type ProtocolError struct {
	Protocol string // e.g. "sceptre", "kinetic"
	Op       string // connector operation, e.g. "stake_flr"
	Err      error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Protocol, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
