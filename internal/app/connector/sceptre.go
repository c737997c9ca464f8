package connector

import (
	"context"
	"math/big"

	"flarekit/internal/domain/entity"
	"flarekit/internal/infrastructure/chain"
	"flarekit/internal/infrastructure/contracts"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const sceptreProtocol = "sceptre"

// Sceptre connects to the Sceptre liquid staking protocol. Staked FLR is
// represented by the rebasing sFLR token.
type Sceptre struct {
	base
	sflr *contracts.BoundContract
}

// NewSceptre binds the sFLR contract on the active network.
func NewSceptre(client chain.Client, book entity.AddressBook, logger *zap.Logger) (*Sceptre, error) {
	if err := requireAddress(sceptreProtocol, "sFLR", book.SceptreSFLR); err != nil {
		return nil, err
	}
	return &Sceptre{
		base: base{client: client, log: logger.Named("SceptreConnector")},
		sflr: contracts.Bind("SceptreSFLR", book.SceptreSFLR, contracts.MustLoad("SceptreSFLR")),
	}, nil
}

func (s *Sceptre) Protocol() string { return sceptreProtocol }

func (s *Sceptre) Symbol() string { return "sFLR" }

// StakeFLR deposits native FLR and mints sFLR shares. amount is in wei and
// rides as the transaction value.
func (s *Sceptre) StakeFLR(ctx context.Context, amount *big.Int) (string, error) {
	return s.submit(ctx, sceptreProtocol, "stake", s.sflr, amount, "submit")
}

// RequestWithdrawal starts the unbonding of the given share amount.
func (s *Sceptre) RequestWithdrawal(ctx context.Context, shareAmount *big.Int) (string, error) {
	return s.submit(ctx, sceptreProtocol, "requestWithdrawal", s.sflr, nil, "requestWithdrawal", shareAmount)
}

// ClaimWithdrawal releases an unbonded withdrawal back to the account.
func (s *Sceptre) ClaimWithdrawal(ctx context.Context, requestID *big.Int) (string, error) {
	return s.submit(ctx, sceptreProtocol, "claimWithdrawal", s.sflr, nil, "claimWithdrawal", requestID)
}

// BalanceOf returns the sFLR balance of an account.
func (s *Sceptre) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return s.readBig(ctx, sceptreProtocol, "balanceOf", s.sflr, "balanceOf", account)
}

// TotalPooledFLR returns the total FLR managed by the staking pool.
func (s *Sceptre) TotalPooledFLR(ctx context.Context) (*big.Int, error) {
	return s.readBig(ctx, sceptreProtocol, "totalPooledFlr", s.sflr, "getTotalPooledFlr")
}

// FLRByShares converts an sFLR share amount into its underlying FLR value.
func (s *Sceptre) FLRByShares(ctx context.Context, shareAmount *big.Int) (*big.Int, error) {
	return s.readBig(ctx, sceptreProtocol, "flrByShares", s.sflr, "getPooledFlrByShares", shareAmount)
}

// SharesByFLR converts a FLR amount into the sFLR shares it buys.
func (s *Sceptre) SharesByFLR(ctx context.Context, flrAmount *big.Int) (*big.Int, error) {
	return s.readBig(ctx, sceptreProtocol, "sharesByFlr", s.sflr, "getSharesByPooledFlr", flrAmount)
}
