package service

import (
	"context"
	"math/big"

	"flarekit/internal/app/connector"
	"flarekit/internal/domain/entity"
	"flarekit/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PositionsService aggregates an account's holdings across every registered
// protocol. One failing protocol degrades its own slot, never the report.
type PositionsService struct {
	network string
	readers []connector.ProtocolReader
	logger  *zap.Logger
}

// NewPositionsService creates a PositionsService over the given readers.
func NewPositionsService(network string, readers []connector.ProtocolReader, logger *zap.Logger) *PositionsService {
	return &PositionsService{
		network: network,
		readers: readers,
		logger:  logger.Named("PositionsService"),
	}
}

// Positions fans the balance reads out in parallel and assembles the report
// in registration order. Failed reads carry their error message in place of
// a balance.
func (s *PositionsService) Positions(ctx context.Context, account common.Address) (*entity.PositionsReport, error) {
	positions := make([]entity.ProtocolPosition, len(s.readers))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range s.readers {
		g.Go(func() error {
			pos := entity.ProtocolPosition{Protocol: r.Protocol(), Symbol: r.Symbol()}
			balance, err := r.BalanceOf(gctx, account)
			if err != nil {
				s.logger.Warn("protocol balance read failed",
					zap.String("protocol", r.Protocol()),
					zap.String("account", account.Hex()),
					zap.Error(err))
				pos.Error = err.Error()
			} else {
				pos.Balance = balance
				pos.Formatted = utils.FormatUnits(balance, 18) + " " + r.Symbol()
			}
			positions[i] = pos
			return nil
		})
	}
	// Goroutines always return nil; Wait only observes context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.PositionsReport{
		Address:   account.Hex(),
		Network:   s.network,
		Positions: positions,
	}, nil
}

// TotalBalance sums the successfully read balances of the report.
func (s *PositionsService) TotalBalance(report *entity.PositionsReport) *big.Int {
	total := new(big.Int)
	for _, p := range report.Positions {
		if p.Balance != nil {
			total.Add(total, p.Balance)
		}
	}
	return total
}
