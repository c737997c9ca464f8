package connector

import (
	"context"
	"fmt"
	"math/big"

	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/contracts"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ProtocolReader is the slice of a connector the positions service needs:
// a protocol tag, the token symbol it accounts for, and a balance read.
type ProtocolReader interface {
	Protocol() string
	Symbol() string
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// base carries the shared plumbing of every protocol connector.
type base struct {
	client chain.Client
	log    *zap.Logger
}

// requireAddress rejects a zero contract address at connector construction
// so a missing testnet deployment surfaces as one clear configuration error.
func requireAddress(protocol, contract string, addr common.Address) error {
	if addr == (common.Address{}) {
		return &entity.ProtocolError{
			Protocol: protocol,
			Op:       "init",
			Err:      &entity.ConfigError{Reason: fmt.Sprintf("%s contract %q is not configured on this network", protocol, contract)},
		}
	}
	return nil
}

func errUnexpectedType(got any, method string) error {
	return fmt.Errorf("unexpected result type %T from %s", got, method)
}

// read runs a view invocation and tags any failure with the protocol and
// operation it served.
func (b base) read(ctx context.Context, protocol, op string, contract *contracts.BoundContract, method string, args ...any) ([]any, error) {
	inv, err := contract.Invoke(method, args...)
	if err != nil {
		return nil, &entity.ProtocolError{Protocol: protocol, Op: op, Err: err}
	}
	out, err := b.client.Call(ctx, inv)
	if err != nil {
		return nil, &entity.ProtocolError{Protocol: protocol, Op: op, Err: err}
	}
	return out, nil
}

// readBig is read for the common single-uint256 result shape.
func (b base) readBig(ctx context.Context, protocol, op string, contract *contracts.BoundContract, method string, args ...any) (*big.Int, error) {
	out, err := b.read(ctx, protocol, op, contract, method, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &entity.ProtocolError{
			Protocol: protocol,
			Op:       op,
			Err:      fmt.Errorf("%s returned no outputs", method),
		}
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, &entity.ProtocolError{
			Protocol: protocol,
			Op:       op,
			Err:      errUnexpectedType(out[0], method),
		}
	}
	return v, nil
}

// readAddress is read for the single-address result shape.
func (b base) readAddress(ctx context.Context, protocol, op string, contract *contracts.BoundContract, method string, args ...any) (common.Address, error) {
	out, err := b.read(ctx, protocol, op, contract, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	if len(out) == 0 {
		return common.Address{}, &entity.ProtocolError{
			Protocol: protocol,
			Op:       op,
			Err:      fmt.Errorf("%s returned no outputs", method),
		}
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, &entity.ProtocolError{
			Protocol: protocol,
			Op:       op,
			Err:      errUnexpectedType(out[0], method),
		}
	}
	return addr, nil
}

// submit builds, signs and broadcasts a write invocation, tagging failures.
// value may be nil for non-payable calls.
func (b base) submit(ctx context.Context, protocol, op string, contract *contracts.BoundContract, value *big.Int, method string, args ...any) (string, error) {
	inv, err := contract.Invoke(method, args...)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: protocol, Op: op, Err: err}
	}
	utx, err := b.client.BuildTransaction(ctx, inv, b.client.Address(), value)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: protocol, Op: op, Err: err}
	}
	txHash, err := b.client.SignAndSendTransaction(ctx, utx)
	if err != nil {
		return "", &entity.ProtocolError{Protocol: protocol, Op: op, Err: err}
	}
	b.log.Info("transaction submitted",
		zap.String("protocol", protocol),
		zap.String("op", op),
		zap.String("txHash", txHash))
	return txHash, nil
}
