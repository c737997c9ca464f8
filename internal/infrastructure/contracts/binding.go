package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BoundContract pairs a parsed ABI with a concrete on-chain address. It is
// stateless beyond its binding, cheap to construct and never mutated.
type BoundContract struct {
	Address common.Address
	ABI     abi.ABI
	Name    string
}

// Bind wraps a loaded ABI definition with a concrete address.
func Bind(name string, address common.Address, parsed abi.ABI) *BoundContract {
	return &BoundContract{Address: address, ABI: parsed, Name: name}
}

// Invoke resolves a named function into a typed Invocation. The function's
// declared mutability decides up front whether the invocation is a read
// (view/pure, executed through Call) or a write (nonpayable/payable, consumed
// by BuildTransaction); argument arity is checked here rather than at
// pack time.
func (c *BoundContract) Invoke(method string, args ...any) (*Invocation, error) {
	m, ok := c.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("contract %s has no function %q", c.Name, method)
	}
	if len(args) != len(m.Inputs) {
		return nil, fmt.Errorf("%s.%s expects %d argument(s), got %d", c.Name, method, len(m.Inputs), len(args))
	}
	return &Invocation{contract: c, method: m, args: args}, nil
}

// Invocation is a single prepared function invocation: a bound contract, a
// resolved method and its arguments.
type Invocation struct {
	contract *BoundContract
	method   abi.Method
	args     []any
}

// Contract returns the bound contract the invocation targets.
func (inv *Invocation) Contract() *BoundContract { return inv.contract }

// Name returns the fully qualified function name, e.g. "SceptreSFLR.submit".
func (inv *Invocation) Name() string {
	return inv.contract.Name + "." + inv.method.Name
}

// ReadOnly reports whether the function's declared mutability is view or
// pure. Read-only invocations never touch the nonce counter or signing
// material.
func (inv *Invocation) ReadOnly() bool {
	return inv.method.StateMutability == "view" || inv.method.StateMutability == "pure"
}

// Payable reports whether the function accepts native value.
func (inv *Invocation) Payable() bool {
	return inv.method.StateMutability == "payable"
}

// CallData ABI-encodes the selector and arguments.
func (inv *Invocation) CallData() ([]byte, error) {
	data, err := inv.contract.ABI.Pack(inv.method.Name, inv.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", inv.Name(), err)
	}
	return data, nil
}

// Unpack decodes a raw eth_call return into the function's declared outputs.
func (inv *Invocation) Unpack(data []byte) ([]any, error) {
	out, err := inv.contract.ABI.Unpack(inv.method.Name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", inv.Name(), err)
	}
	return out, nil
}
