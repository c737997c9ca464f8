package service

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"flarekit/internal/app/connector"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type stubReader struct {
	protocol string
	symbol   string
	balance  *big.Int
	err      error
}

func (s stubReader) Protocol() string { return s.protocol }
func (s stubReader) Symbol() string   { return s.symbol }
func (s stubReader) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return s.balance, s.err
}

func TestPositionsPartialFailureIsolation(t *testing.T) {
	t.Parallel()

	readers := []connector.ProtocolReader{
		stubReader{protocol: "sceptre", symbol: "sFLR", balance: big.NewInt(1_500_000_000_000_000_000)},
		stubReader{protocol: "kinetic", symbol: "ksFLR", err: fmt.Errorf("rpc error on eth_call: connection refused")},
		stubReader{protocol: "cyclo", symbol: "cysFLR", balance: big.NewInt(0)},
	}
	svc := NewPositionsService("flare", readers, zap.NewNop())

	report, err := svc.Positions(context.Background(), common.HexToAddress("0x00000000000000000000000000000000000000AA"))
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if report.Network != "flare" {
		t.Fatalf("unexpected network %q", report.Network)
	}
	if len(report.Positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(report.Positions))
	}

	// Registration order is preserved under the parallel fan-out.
	if report.Positions[0].Protocol != "sceptre" || report.Positions[2].Protocol != "cyclo" {
		t.Fatalf("position order lost: %+v", report.Positions)
	}
	if report.Positions[0].Formatted != "1.5 sFLR" {
		t.Fatalf("unexpected formatted balance %q", report.Positions[0].Formatted)
	}
	if report.Positions[1].Error == "" || report.Positions[1].Balance != nil {
		t.Fatalf("failed protocol not degraded in place: %+v", report.Positions[1])
	}
	if report.Positions[2].Balance == nil || report.Positions[2].Balance.Sign() != 0 {
		t.Fatalf("zero balance must still be reported: %+v", report.Positions[2])
	}
}

func TestPositionsEmptyReaderSet(t *testing.T) {
	t.Parallel()

	svc := NewPositionsService("coston2", nil, zap.NewNop())
	report, err := svc.Positions(context.Background(), common.Address{1})
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if len(report.Positions) != 0 {
		t.Fatalf("expected empty report, got %d positions", len(report.Positions))
	}
}

func TestTotalBalanceSkipsFailedSlots(t *testing.T) {
	t.Parallel()

	readers := []connector.ProtocolReader{
		stubReader{protocol: "sceptre", symbol: "sFLR", balance: big.NewInt(100)},
		stubReader{protocol: "kinetic", symbol: "ksFLR", err: fmt.Errorf("boom")},
		stubReader{protocol: "firelight", symbol: "stXRP", balance: big.NewInt(23)},
	}
	svc := NewPositionsService("flare", readers, zap.NewNop())

	report, err := svc.Positions(context.Background(), common.Address{1})
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if got := svc.TotalBalance(report); got.Cmp(big.NewInt(123)) != 0 {
		t.Fatalf("expected total 123, got %v", got)
	}
}
