package contracts

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestLoadKnownContracts(t *testing.T) {
	t.Parallel()

	for name := range catalog {
		parsed, err := Load(name)
		if err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
		if len(parsed.Methods) == 0 {
			t.Fatalf("contract %q parsed with no methods", name)
		}
	}
}

func TestLoadUnknownContract(t *testing.T) {
	t.Parallel()

	_, err := Load("NoSuchContract")
	if !errors.Is(err, ErrUnknownContract) {
		t.Fatalf("expected ErrUnknownContract, got %v", err)
	}
}

func TestLoadIsCaseSensitive(t *testing.T) {
	t.Parallel()

	_, err := Load("erc20")
	if !errors.Is(err, ErrUnknownContract) {
		t.Fatalf("lookup must be exact, got %v", err)
	}
}

func TestInvokeArityCheck(t *testing.T) {
	t.Parallel()

	c := Bind("ERC20", common.Address{1}, MustLoad("ERC20"))

	if _, err := c.Invoke("balanceOf"); err == nil {
		t.Fatal("expected arity error for missing argument")
	}
	if _, err := c.Invoke("balanceOf", common.Address{2}, big.NewInt(1)); err == nil {
		t.Fatal("expected arity error for extra argument")
	}
	if _, err := c.Invoke("transfer", common.Address{2}, big.NewInt(1)); err == nil {
		t.Fatal("expected error for unknown function")
	}
}

func TestInvocationMutability(t *testing.T) {
	t.Parallel()

	sflr := Bind("SceptreSFLR", common.Address{1}, MustLoad("SceptreSFLR"))

	submit, err := sflr.Invoke("submit")
	if err != nil {
		t.Fatalf("invoke submit: %v", err)
	}
	if submit.ReadOnly() {
		t.Fatal("submit must not be read-only")
	}
	if !submit.Payable() {
		t.Fatal("submit must be payable")
	}

	balance, err := sflr.Invoke("balanceOf", common.Address{2})
	if err != nil {
		t.Fatalf("invoke balanceOf: %v", err)
	}
	if !balance.ReadOnly() {
		t.Fatal("balanceOf must be read-only")
	}
	if balance.Payable() {
		t.Fatal("balanceOf must not be payable")
	}

	request, err := sflr.Invoke("requestWithdrawal", big.NewInt(1))
	if err != nil {
		t.Fatalf("invoke requestWithdrawal: %v", err)
	}
	if request.ReadOnly() || request.Payable() {
		t.Fatal("requestWithdrawal must be a non-payable write")
	}
}

func TestSwapRouterMethodSurface(t *testing.T) {
	t.Parallel()

	router := Bind("SparkDEXRouter", common.Address{1}, MustLoad("SparkDEXRouter"))

	for _, name := range []string{"exactInputSingle", "exactOutputSingle"} {
		if _, ok := router.ABI.Methods[name]; !ok {
			t.Fatalf("router missing method %s", name)
		}
		if router.ABI.Methods[name].StateMutability != "payable" {
			t.Fatalf("%s must be payable", name)
		}
	}
	for _, name := range []string{"factory", "WETH9"} {
		inv, err := router.Invoke(name)
		if err != nil {
			t.Fatalf("invoke %s: %v", name, err)
		}
		if !inv.ReadOnly() {
			t.Fatalf("%s must be read-only", name)
		}
	}
}

func TestInvocationCallDataRoundTrip(t *testing.T) {
	t.Parallel()

	c := Bind("ERC20", common.Address{1}, MustLoad("ERC20"))
	owner := common.HexToAddress("0x00000000000000000000000000000000000000AA")

	inv, err := c.Invoke("balanceOf", owner)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := inv.Name(); got != "ERC20.balanceOf" {
		t.Fatalf("unexpected invocation name %q", got)
	}

	data, err := inv.CallData()
	if err != nil {
		t.Fatalf("calldata: %v", err)
	}
	// 4-byte selector plus one 32-byte address argument.
	if len(data) != 36 {
		t.Fatalf("unexpected calldata length %d", len(data))
	}

	want := big.NewInt(42)
	out, err := inv.Unpack(common.LeftPadBytes(want.Bytes(), 32))
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got := out[0].(*big.Int); got.Cmp(want) != 0 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
