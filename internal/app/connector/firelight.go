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

const firelightProtocol = "firelight"

// Firelight connects to the Firelight stXRP staking vault over FXRP.
// Withdrawals settle in periods: withdraw queues the amount, claimWithdraw
// releases it once the period has elapsed.
type Firelight struct {
	base
	vault *contracts.BoundContract
}

// NewFirelight binds the stXRP vault on the active network.
func NewFirelight(client chain.Client, book entity.AddressBook, logger *zap.Logger) (*Firelight, error) {
	if err := requireAddress(firelightProtocol, "stXRP vault", book.FirelightStXRPVault); err != nil {
		return nil, err
	}
	return &Firelight{
		base:  base{client: client, log: logger.Named("FirelightConnector")},
		vault: contracts.Bind("FirelightVault", book.FirelightStXRPVault, contracts.MustLoad("FirelightVault")),
	}, nil
}

func (f *Firelight) Protocol() string { return firelightProtocol }

func (f *Firelight) Symbol() string { return "stXRP" }

// StakeXRP deposits FXRP into the vault and mints stXRP for the caller.
func (f *Firelight) StakeXRP(ctx context.Context, assets *big.Int) (string, error) {
	return f.submit(ctx, firelightProtocol, "stake", f.vault, nil,
		"deposit", assets, f.client.Address())
}

// RequestWithdrawal queues an asset amount for withdrawal in the current
// period.
func (f *Firelight) RequestWithdrawal(ctx context.Context, assets *big.Int) (string, error) {
	owner := f.client.Address()
	return f.submit(ctx, firelightProtocol, "requestWithdrawal", f.vault, nil,
		"withdraw", assets, owner, owner)
}

// ClaimWithdrawal releases the assets queued in the given period.
func (f *Firelight) ClaimWithdrawal(ctx context.Context, period *big.Int) (string, error) {
	return f.submit(ctx, firelightProtocol, "claimWithdrawal", f.vault, nil, "claimWithdraw", period)
}

// BalanceOf returns the stXRP balance of an account.
func (f *Firelight) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return f.readBig(ctx, firelightProtocol, "balanceOf", f.vault, "balanceOf", account)
}

// TotalAssets returns the total FXRP managed by the vault.
func (f *Firelight) TotalAssets(ctx context.Context) (*big.Int, error) {
	return f.readBig(ctx, firelightProtocol, "totalAssets", f.vault, "totalAssets")
}

// CurrentPeriod returns the vault's current withdrawal period.
func (f *Firelight) CurrentPeriod(ctx context.Context) (*big.Int, error) {
	return f.readBig(ctx, firelightProtocol, "currentPeriod", f.vault, "currentPeriod")
}

// PendingWithdrawal returns the amount an account has queued in a period.
func (f *Firelight) PendingWithdrawal(ctx context.Context, period *big.Int, account common.Address) (*big.Int, error) {
	return f.readBig(ctx, firelightProtocol, "pendingWithdrawal", f.vault, "withdrawalsOf", period, account)
}
